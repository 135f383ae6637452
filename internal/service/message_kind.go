package service

import (
	"strings"

	"allumni-network/internal/model"
)

// ClassifyPayload 根据 data-URI 的媒体类型前缀推断消息类型
func ClassifyPayload(payload string) model.MessageKind {
	switch {
	case strings.HasPrefix(payload, "data:image/"):
		return model.MessageImage
	case strings.HasPrefix(payload, "data:audio/"):
		return model.MessageAudio
	default:
		return model.MessageText
	}
}

// DefaultContent 附件消息未填写文字时使用的占位内容
func DefaultContent(kind model.MessageKind) string {
	switch kind {
	case model.MessageImage:
		return "📷 Imagem"
	case model.MessageAudio:
		return "🎤 Áudio"
	default:
		return ""
	}
}
