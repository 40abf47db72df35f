package app

import "sync"

const (
	EventHistory    = "message-history"
	EventNewMessage = "new-message"
	EventError      = "message-error"
)

// Hub 维护房间与订阅者的对应关系，连接关闭后自动退订。
type Hub struct {
	sync.RWMutex
	rooms   map[string]map[string]Subscriber
	aliases map[string]map[string]string // sub id -> 客户端房间名 -> 房间 key
	watched map[string]struct{}
}

func NewHub() *Hub {
	return &Hub{
		rooms:   make(map[string]map[string]Subscriber),
		aliases: make(map[string]map[string]string),
		watched: make(map[string]struct{}),
	}
}

// Join 同一客户端房间名只对应一个房间，重复加入会先退出旧房间。
func (h *Hub) Join(key, alias string, sub Subscriber) {
	if sub == nil {
		return
	}
	h.Lock()
	defer h.Unlock()

	id := sub.ID()
	if _, ok := h.watched[id]; !ok {
		h.watched[id] = struct{}{}
		go h.watch(sub)
	}

	names := h.aliases[id]
	if names == nil {
		names = make(map[string]string)
		h.aliases[id] = names
	}
	if old, ok := names[alias]; ok && old != key {
		h.remove(old, id)
	}
	names[alias] = key

	members := h.rooms[key]
	if members == nil {
		members = make(map[string]Subscriber)
		h.rooms[key] = members
	}
	members[id] = sub
}

func (h *Hub) Leave(alias string, sub Subscriber) {
	if sub == nil {
		return
	}
	h.Lock()
	defer h.Unlock()

	id := sub.ID()
	key, ok := h.aliases[id][alias]
	if !ok {
		return
	}
	delete(h.aliases[id], alias)
	h.remove(key, id)
}

// Drop 退出该订阅者的全部房间。
func (h *Hub) Drop(sub Subscriber) {
	h.Lock()
	defer h.Unlock()

	id := sub.ID()
	for _, key := range h.aliases[id] {
		h.remove(key, id)
	}
	delete(h.aliases, id)
	delete(h.watched, id)
}

// Publish 按到达顺序推送，推送本身不阻塞。
func (h *Hub) Publish(key, event string, data any) int {
	h.RLock()
	subs := make([]Subscriber, 0, len(h.rooms[key]))
	for _, s := range h.rooms[key] {
		subs = append(subs, s)
	}
	h.RUnlock()

	for _, s := range subs {
		s.Push(event, data)
	}
	return len(subs)
}

func (h *Hub) Members(key string) int {
	h.RLock()
	defer h.RUnlock()
	return len(h.rooms[key])
}

func (h *Hub) watch(sub Subscriber) {
	<-sub.Done()
	h.Drop(sub)
}

func (h *Hub) remove(key, id string) {
	members := h.rooms[key]
	delete(members, id)
	if len(members) == 0 {
		delete(h.rooms, key)
	}
}
