package utils

import "time"

// clockLayout 是訊息 time 欄位的格式 (HH:mm:ss)
const clockLayout = "15:04:05"

// Clock 提供目前時間，測試時可替換
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock 回傳使用系統時間的 Clock
func SystemClock() Clock {
	return systemClock{}
}

// FormatClock 將時間格式化為訊息顯示用的 HH:mm:ss
func FormatClock(t time.Time) string {
	return t.Format(clockLayout)
}
