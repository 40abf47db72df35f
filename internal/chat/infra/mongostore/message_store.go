package mongostore

import (
	"Realm/internal/chat/domain"
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const defaultMessageCollectionName = "chat_messages"

var errNilCollection = errors.New("mongodb chat collection is nil")

// IDGenerator 消息 id 由调用方提供，mongo 没有自增主键。
type IDGenerator interface {
	NextID() int64
}

type messageDoc struct {
	ID          int64     `bson:"_id"`
	RoomID      int       `bson:"room_id"`
	PlayerID    int       `bson:"player_id"`
	PlayerName  string    `bson:"player_name"`
	Content     string    `bson:"content"`
	MessageType string    `bson:"message_type"`
	CreatedAt   time.Time `bson:"created_at"`
}

type MessageStore struct {
	coll *mongo.Collection
	ids  IDGenerator
}

func NewMessageStore(db *mongo.Database, ids IDGenerator) *MessageStore {
	if db == nil {
		return &MessageStore{ids: ids}
	}
	return &MessageStore{coll: db.Collection(defaultMessageCollectionName), ids: ids}
}

// EnsureIndexes 历史查询按 room_id + created_at 倒序。
func (s *MessageStore) EnsureIndexes(ctx context.Context) error {
	if s.coll == nil {
		return errNilCollection
	}
	_, err := s.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "room_id", Value: 1}, {Key: "created_at", Value: -1}},
	})
	return err
}

func (s *MessageStore) Append(ctx context.Context, m *domain.ChatMessage) error {
	if s.coll == nil {
		return domain.ErrSystemUnavailable.WithCause(errNilCollection)
	}
	m.ID = s.ids.NextID()
	_, err := s.coll.InsertOne(ctx, messageDoc{
		ID:          m.ID,
		RoomID:      m.RoomID,
		PlayerID:    m.PlayerID,
		PlayerName:  m.PlayerName,
		Content:     m.Content,
		MessageType: m.MessageType,
		CreatedAt:   m.CreatedAt,
	})
	if err != nil {
		return domain.ErrSystemUnavailable.WithData("room_id", m.RoomID).WithCause(err)
	}
	return nil
}

func (s *MessageStore) Recent(ctx context.Context, roomID, limit int) ([]domain.ChatMessage, error) {
	if s.coll == nil {
		return nil, domain.ErrSystemUnavailable.WithCause(errNilCollection)
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}).
		SetLimit(int64(limit))
	cur, err := s.coll.Find(ctx, bson.M{"room_id": roomID}, opts)
	if err != nil {
		return nil, domain.ErrSystemUnavailable.WithData("room_id", roomID).WithCause(err)
	}
	var docs []messageDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, domain.ErrSystemUnavailable.WithData("room_id", roomID).WithCause(err)
	}

	out := make([]domain.ChatMessage, len(docs))
	for i, d := range docs {
		// 倒序查出，翻转成时间升序
		out[len(docs)-1-i] = domain.ChatMessage{
			ID:          d.ID,
			RoomID:      d.RoomID,
			PlayerID:    d.PlayerID,
			PlayerName:  d.PlayerName,
			Content:     d.Content,
			MessageType: d.MessageType,
			CreatedAt:   d.CreatedAt,
		}
	}
	return out, nil
}
