package httpapi

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	authApp "alfozan-insights/internal/application/auth"
)

func (s *Server) handleLogin(c *gin.Context) {
	var body struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid body", "error_code": errCodeBadRequest})
		return
	}

	res, err := s.loginUC.Execute(c.Request.Context(), authApp.LoginInput{
		Username: body.Username,
		Password: body.Password,
	})
	if err != nil {
		log.Printf("[Auth] login failure for %s: %v", body.Username, err)
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "invalid username or password", "error_code": errCodeInvalidCredentials})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user": gin.H{
			"id":       res.User.ID,
			"username": res.User.Username,
			"name":     res.User.Name,
			"role":     res.User.Role,
		},
		"access_token": res.Token.Token,
		"token_type":   "Bearer",
		"expiry":       res.Token.ExpiresAt.Format(time.RFC3339),
	})
}

func (s *Server) handleLogout(c *gin.Context) {
	token := c.GetString("token")
	if err := s.logoutUC.Execute(c.Request.Context(), token); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "logout failed", "error_code": errCodeInternal})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
