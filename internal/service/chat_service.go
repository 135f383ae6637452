package service

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"

	"allumni-network/internal/dto"
	"allumni-network/internal/model"
	"allumni-network/internal/repository"
)

// ChatService 聊天业务接口
type ChatService interface {
	Send(ctx context.Context, req *dto.SendMessageRequest) (int64, error)
	// ListGroup 群消息，按创建时间升序；since > 0 时只返回 id 更大的消息
	ListGroup(ctx context.Context, groupID, since int64) ([]dto.MessageView, error)
	// ListPrivate 两个用户之间的双向私信，按创建时间升序
	ListPrivate(ctx context.Context, userA, userB int64) ([]dto.MessageView, error)
}

type chatService struct {
	store           repository.Store
	maxPayloadBytes int
	logger          *zap.Logger
}

// NewChatService 创建 ChatService 实例
// maxPayloadBytes <= 0 表示不限制附件大小
func NewChatService(store repository.Store, maxPayloadBytes int, logger *zap.Logger) ChatService {
	return &chatService{store: store, maxPayloadBytes: maxPayloadBytes, logger: logger}
}

// ──── Send ────

func (s *chatService) Send(ctx context.Context, req *dto.SendMessageRequest) (int64, error) {
	if req.SenderID == 0 {
		return 0, ErrSenderRequired
	}
	recipient := nonZero(req.RecipientID)
	group := nonZero(req.GroupID)
	if recipient == nil && group == nil {
		return 0, ErrTargetRequired
	}
	if recipient != nil && group != nil {
		return 0, ErrTargetAmbiguous
	}

	payload := nonEmpty(req.Payload)
	if payload != nil && s.maxPayloadBytes > 0 && len(*payload) > s.maxPayloadBytes {
		return 0, ErrPayloadTooLarge
	}

	// 1. 类型：显式给出时校验，否则按附件前缀推断
	kind := model.MessageKind(req.Kind)
	switch {
	case req.Kind != "":
		if !kind.Valid() {
			return 0, ErrInvalidMessageKind
		}
	case payload != nil:
		kind = ClassifyPayload(*payload)
	default:
		kind = model.MessageText
	}

	// 2. 附件消息的默认文字
	content := req.Content
	if content == "" && payload != nil {
		content = DefaultContent(kind)
	}

	// 3. 发送者与目标存在性
	var sender model.User
	if err := s.store.Get(ctx, repository.Users, req.SenderID, &sender); err != nil {
		return 0, storageError(s.logger, "查询发送者失败", err, ErrUserNotFound)
	}
	if !sender.Active() {
		return 0, ErrAccountClosed
	}
	if group != nil {
		var g model.Group
		if err := s.store.Get(ctx, repository.Groups, *group, &g); err != nil {
			return 0, storageError(s.logger, "查询群组失败", err, ErrGroupNotFound)
		}
	} else {
		var u model.User
		if err := s.store.Get(ctx, repository.Users, *recipient, &u); err != nil {
			return 0, storageError(s.logger, "查询接收者失败", err, ErrUserNotFound)
		}
	}

	msg := &model.Message{
		SenderID:    req.SenderID,
		RecipientID: recipient,
		GroupID:     group,
		Content:     content,
		Kind:        kind,
		Payload:     payload,
		CreatedAt:   time.Now().UTC(),
	}
	id, err := s.store.Insert(ctx, repository.Messages, msg)
	if err != nil {
		return 0, storageError(s.logger, "保存消息失败", err, nil)
	}

	s.logger.Debug("消息已保存",
		zap.Int64("message_id", id),
		zap.String("kind", string(kind)),
		zap.Bool("has_payload", payload != nil),
	)
	return id, nil
}

// ──── ListGroup ────

func (s *chatService) ListGroup(ctx context.Context, groupID, since int64) ([]dto.MessageView, error) {
	var msgs []model.Message
	if err := s.store.List(ctx, repository.Messages, repository.Where("grupo_id", groupID), &msgs); err != nil {
		return nil, storageError(s.logger, "查询群消息失败", err, nil)
	}
	if since > 0 {
		kept := msgs[:0]
		for _, m := range msgs {
			if m.ID > since {
				kept = append(kept, m)
			}
		}
		msgs = kept
	}
	return s.toViews(ctx, msgs)
}

// ──── ListPrivate ────

func (s *chatService) ListPrivate(ctx context.Context, userA, userB int64) ([]dto.MessageView, error) {
	pairs := [][2]int64{{userA, userB}}
	if userA != userB {
		pairs = append(pairs, [2]int64{userB, userA})
	}

	var msgs []model.Message
	for _, pair := range pairs {
		var sent []model.Message
		if err := s.store.List(ctx, repository.Messages, repository.Where("remetente_id", pair[0]), &sent); err != nil {
			return nil, storageError(s.logger, "查询私信失败", err, nil)
		}
		for _, m := range sent {
			if m.RecipientID != nil && *m.RecipientID == pair[1] {
				msgs = append(msgs, m)
			}
		}
	}
	return s.toViews(ctx, msgs)
}

// toViews 按创建时间升序排序并补充发送者名称
func (s *chatService) toViews(ctx context.Context, msgs []model.Message) ([]dto.MessageView, error) {
	sort.SliceStable(msgs, func(i, j int) bool {
		if !msgs[i].CreatedAt.Equal(msgs[j].CreatedAt) {
			return msgs[i].CreatedAt.Before(msgs[j].CreatedAt)
		}
		return msgs[i].ID < msgs[j].ID
	})

	names := newNameCache(s.store)
	views := make([]dto.MessageView, 0, len(msgs))
	for _, m := range msgs {
		sender, err := names.name(ctx, m.SenderID)
		if err != nil {
			return nil, storageError(s.logger, "查询发送者失败", err, nil)
		}
		views = append(views, dto.MessageView{
			ID:          m.ID,
			SenderID:    m.SenderID,
			RecipientID: m.RecipientID,
			GroupID:     m.GroupID,
			Content:     m.Content,
			Kind:        string(m.Kind),
			Payload:     m.Payload,
			CreatedAt:   m.CreatedAt,
			SenderName:  sender,
		})
	}
	return views, nil
}

// nonZero 0 视为未提供
func nonZero(id *int64) *int64 {
	if id == nil || *id == 0 {
		return nil
	}
	return id
}
