package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Анонимная сессия нужна только чтобы привязать припаркованную заявку
// к посетителю между подачей формы и логином.

const SessionCookie = "arka_session"

const sessionMaxAge = 30 * 60 // секунд, синхронизировано с TTL в Redis

// SessionID возвращает идентификатор сессии из куки (пустая строка если нет)
func SessionID(c *gin.Context) string {
	sid, err := c.Cookie(SessionCookie)
	if err != nil {
		return ""
	}
	return sid
}

// IssueSession выдаёт новую куку сессии и возвращает её идентификатор
func IssueSession(c *gin.Context) string {
	sid := uuid.NewString()
	c.SetCookie(SessionCookie, sid, sessionMaxAge, "/", "", false, true)
	return sid
}

// ClearSession удаляет куку сессии после дренажа припаркованных данных
func ClearSession(c *gin.Context) {
	c.SetCookie(SessionCookie, "", -1, "/", "", false, true)
}
