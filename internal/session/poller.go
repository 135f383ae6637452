package session

import (
	"context"
	"time"

	"go.uber.org/zap"

	"allumni-network/internal/dto"
)

// DefaultPollInterval 群聊刷新间隔
const DefaultPollInterval = 3 * time.Second

// GroupMessageSource 群消息来源（由 service.ChatService 实现）
type GroupMessageSource interface {
	ListGroup(ctx context.Context, groupID, since int64) ([]dto.MessageView, error)
}

// Poller 以固定间隔拉取群消息，只投递新消息
type Poller struct {
	source   GroupMessageSource
	groupID  int64
	interval time.Duration
	logger   *zap.Logger
}

// NewPoller 创建 Poller；interval <= 0 时使用 DefaultPollInterval
func NewPoller(source GroupMessageSource, groupID int64, interval time.Duration, logger *zap.Logger) *Poller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Poller{
		source:   source,
		groupID:  groupID,
		interval: interval,
		logger:   logger.With(zap.Int64("group_id", groupID)),
	}
}

// Run 阻塞运行直到 ctx 取消
//
// 启动时立即拉取一次，之后每个周期拉取 id 大于 since 的消息。
// deliver 在 Run 所在的 goroutine 中同步调用；拉取失败只记录日志，下个周期重试。
func (p *Poller) Run(ctx context.Context, since int64, deliver func([]dto.MessageView)) error {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	last := since
	poll := func() {
		msgs, err := p.source.ListGroup(ctx, p.groupID, last)
		if err != nil {
			if ctx.Err() == nil {
				p.logger.Warn("拉取群消息失败", zap.Error(err))
			}
			return
		}
		if len(msgs) == 0 {
			return
		}
		for _, m := range msgs {
			if m.ID > last {
				last = m.ID
			}
		}
		deliver(msgs)
	}

	poll()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			poll()
		}
	}
}
