package model

import "time"

// MessageKind 消息类型
type MessageKind string

const (
	MessageText  MessageKind = "texto"
	MessageImage MessageKind = "imagem"
	MessageAudio MessageKind = "audio"
)

// Valid 是否为已知类型
func (k MessageKind) Valid() bool {
	switch k {
	case MessageText, MessageImage, MessageAudio:
		return true
	}
	return false
}

// Message 消息表，对应 mensagens
// RecipientID 与 GroupID 有且仅有一个非空
type Message struct {
	Key
	SenderID    int64       `gorm:"column:remetente_id;not null;index"       json:"remetente_id"`
	RecipientID *int64      `gorm:"column:destinatario_id;index"             json:"destinatario_id"`
	GroupID     *int64      `gorm:"column:grupo_id;index"                    json:"grupo_id"`
	Content     string      `gorm:"column:conteudo;type:text;not null"       json:"conteudo"`
	Kind        MessageKind `gorm:"column:tipo;type:varchar(10);not null"    json:"tipo"`
	Payload     *string     `gorm:"column:arquivo_url;type:text"             json:"arquivo_url"` // data-URI
	CreatedAt   time.Time   `gorm:"column:created_at;not null"               json:"created_at"`
}

// TableName 指定表名
func (Message) TableName() string { return "mensagens" }
