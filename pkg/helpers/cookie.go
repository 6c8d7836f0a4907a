package helpers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// SessionCookieName is the cookie carrying the signed session token.
const SessionCookieName = "token"

// CookieManager writes and clears the session cookie. In production the cookie
// is Secure with SameSite=None so a cross-site SPA can send it; elsewhere it
// stays SameSite=Strict.
type CookieManager struct {
	Domain    string
	Secure    bool
	CrossSite bool
}

func NewCookieManager(domain string, secure, crossSite bool) *CookieManager {
	return &CookieManager{Domain: domain, Secure: secure, CrossSite: crossSite}
}

func (m *CookieManager) sameSite() http.SameSite {
	if m.CrossSite {
		return http.SameSiteNoneMode
	}
	return http.SameSiteStrictMode
}

// SetSession stores the session token as an HTTP-only cookie until exp.
func (m *CookieManager) SetSession(c *gin.Context, token string, exp time.Time) {
	c.SetSameSite(m.sameSite())
	c.SetCookie(SessionCookieName, token, maxAgeFrom(exp), "/", m.Domain, m.Secure, true)
}

// ClearSession removes the session cookie; clearing an absent cookie is a no-op.
func (m *CookieManager) ClearSession(c *gin.Context) {
	c.SetSameSite(m.sameSite())
	c.SetCookie(SessionCookieName, "", -1, "/", m.Domain, m.Secure, true)
}

func maxAgeFrom(exp time.Time) int {
	sec := int(time.Until(exp).Seconds())
	if sec < 0 {
		return 0
	}
	return sec
}
