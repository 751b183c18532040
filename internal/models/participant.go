package models

import "time"

// Participant 表示聊天室內的一位在線參與者
type Participant struct {
	Name       string `gorm:"primaryKey;size:64" json:"name"`
	LastStatus int64  `gorm:"index;not null" json:"lastStatus"` // 最後一次心跳，Unix 毫秒
}

// LastSeen 回傳最後一次心跳的時間
func (p Participant) LastSeen() time.Time {
	return time.UnixMilli(p.LastStatus)
}

// IsStale 判斷在 now 時是否已超過 timeout 沒有心跳
func (p Participant) IsStale(now time.Time, timeout time.Duration) bool {
	return now.UnixMilli()-p.LastStatus > timeout.Milliseconds()
}
