package repo

import (
	"Realm/internal/chat/domain"
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ChatRepo struct {
	db *gorm.DB
}

func NewChatRepo(db *gorm.DB) *ChatRepo {
	return &ChatRepo{db: db}
}

type speakerRow struct {
	ID         int
	UserID     int
	Name       string
	KingdomID  int
	AllianceID *int
}

func (r *ChatRepo) Speaker(ctx context.Context, uid, playerID int) (*domain.Speaker, error) {
	q := r.db.WithContext(ctx).
		Table("players AS p").
		Select("p.id AS id, p.user_id AS user_id, p.name AS name, p.kingdom_id AS kingdom_id, m.alliance_id AS alliance_id").
		Joins("LEFT JOIN alliance_members AS m ON m.player_id = p.id").
		Where("p.user_id = ?", uid)
	if playerID > 0 {
		q = q.Where("p.id = ?", playerID)
	}

	var rows []speakerRow
	if err := q.Order("p.id").Limit(1).Scan(&rows).Error; err != nil {
		return nil, domain.ErrSystemUnavailable.WithData("uid", uid).WithCause(err)
	}
	if len(rows) == 0 {
		return nil, domain.ErrPlayerNotFound.WithData("uid", uid).WithData("player_id", playerID)
	}
	row := rows[0]
	return &domain.Speaker{
		PlayerID:   row.ID,
		UserID:     row.UserID,
		Name:       row.Name,
		KingdomID:  row.KingdomID,
		AllianceID: row.AllianceID,
	}, nil
}

func (r *ChatRepo) Room(ctx context.Context, scope domain.Scope) (*domain.ChatRoom, error) {
	key := scope.Key()
	var room domain.ChatRoom
	err := r.db.WithContext(ctx).Where("name = ?", key).First(&room).Error
	if err == nil {
		return &room, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrSystemUnavailable.WithData("room", key).WithCause(err)
	}

	// 并发首次创建时靠唯一索引兜底，冲突后重读
	created := scope.NewRoom()
	err = r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(created).Error
	if err != nil {
		return nil, domain.ErrSystemUnavailable.WithData("room", key).WithCause(err)
	}
	if err := r.db.WithContext(ctx).Where("name = ?", key).First(&room).Error; err != nil {
		return nil, domain.ErrSystemUnavailable.WithData("room", key).WithCause(err)
	}
	return &room, nil
}

func (r *ChatRepo) Append(ctx context.Context, m *domain.ChatMessage) error {
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return domain.ErrSystemUnavailable.WithData("room_id", m.RoomID).WithCause(err)
	}
	return nil
}

func (r *ChatRepo) Recent(ctx context.Context, roomID, limit int) ([]domain.ChatMessage, error) {
	var out []domain.ChatMessage
	err := r.db.WithContext(ctx).
		Where("room_id = ?", roomID).
		Order("created_at DESC").Order("id DESC").
		Limit(limit).
		Find(&out).Error
	if err != nil {
		return nil, domain.ErrSystemUnavailable.WithData("room_id", roomID).WithCause(err)
	}
	reverse(out)
	return out, nil
}

func reverse(msgs []domain.ChatMessage) {
	for i, j := 0, len(msgs)-1; i < j; i, j = i+1, j-1 {
		msgs[i], msgs[j] = msgs[j], msgs[i]
	}
}
