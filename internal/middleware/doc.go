// Package middleware 提供了 HTTP 請求處理的中間件。
//
// 包含 CORS 設定，以及從 User header 取得參與者名稱的身分中間件。
// 聊天室不做帳號驗證，名稱只用於判斷訊息的擁有者。
package middleware
