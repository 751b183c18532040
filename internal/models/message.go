package models

// MessageType 定義聊天事件的種類
type MessageType string

const (
	TypeStatus         MessageType = "status"
	TypeMessage        MessageType = "message"
	TypePrivateMessage MessageType = "private_message"
)

// 狀態訊息的固定內容
const (
	TextEntered = "entra na sala..."
	TextLeft    = "sai da sala..."
)

// Message 是聊天室的一筆事件，寫入後不可修改
type Message struct {
	Seq  uint64      `gorm:"primaryKey;autoIncrement" json:"-"` // 寫入順序
	UID  string      `gorm:"uniqueIndex;size:36;not null" json:"id"`
	From string      `gorm:"column:from_name;index;size:64;not null" json:"from" validate:"required"`
	To   string      `gorm:"column:to_name;index;size:64;not null" json:"to" validate:"required"`
	Text string      `gorm:"type:text;not null" json:"text" validate:"required"`
	Type MessageType `gorm:"size:20;index;not null" json:"type" validate:"required,oneof=status message private_message"`
	Time string      `gorm:"size:8;not null" json:"time" validate:"required"`
}

// VisibleTo 判斷 reader 是否可以看到這則訊息。
// type 為 message 的公開訊息對所有人可見，即使 to 指定了特定對象。
func (m Message) VisibleTo(reader, broadcast string) bool {
	return m.From == reader ||
		m.To == reader ||
		m.To == broadcast ||
		m.Type == TypeMessage
}
