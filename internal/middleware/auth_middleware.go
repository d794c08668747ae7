package middleware

import (
	"Vega_Stream/internal/policy"
	"errors"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// IdentityKey 是gin context里存放policy.Identity的键
const IdentityKey = "identity"

// IdentityFromContext 取出中间件写入的身份，没有就是匿名
func IdentityFromContext(c *gin.Context) policy.Identity {
	value, exists := c.Get(IdentityKey)
	if !exists {
		return policy.Anonymous()
	}
	id, ok := value.(policy.Identity)
	if !ok {
		return policy.Anonymous()
	}
	return id
}

// bearerToken 从http请求头里拿"Authorization: Bearer [token]"
func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", false
	}
	return parts[1], true
}

// parseIdentity 验证token并把claims还原成显式的Identity结构
// 后续所有权限判断都基于这个结构体，不碰全局状态
func parseIdentity(tokenString string) (policy.Identity, error) {
	secretKey := []byte(os.Getenv("JWT_SECRET_KEY"))

	// 解析Token，返回加密前的token（Header.Payload.Signature），还附带valid判断是否有效
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// 确保签名方法是对称加密族
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("非预期的签名方法")
		}
		return secretKey, nil
	})
	if err != nil || !token.Valid {
		return policy.Anonymous(), errors.New("无效的授权令牌")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return policy.Anonymous(), errors.New("无效的授权令牌")
	}
	// jwt.MapClaims里数字相关会自动解析为float64
	userID, _ := claims["user_id"].(float64)
	username, _ := claims["username"].(string)
	isStaff, _ := claims["is_staff"].(bool)

	return policy.Identity{
		UserID:        uint64(userID),
		Username:      username,
		IsStaff:       isStaff,
		Authenticated: true,
	}, nil
}

// AuthMiddleware 要求必须带有效token，点赞、发布视频这类写操作用它
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			// 立刻调用c.Abort()，阻止后续的任何处理器被执行
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "请求未包含授权令牌"})
			return
		}
		id, err := parseIdentity(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		c.Set(IdentityKey, id)
		// 放行，继续处理请求
		c.Next()
	}
}

// OptionalAuthMiddleware 给浏览接口用：没带token按匿名处理，带了坏token还是401
func OptionalAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			c.Set(IdentityKey, policy.Anonymous())
			c.Next()
			return
		}
		id, err := parseIdentity(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		c.Set(IdentityKey, id)
		c.Next()
	}
}

// StaffOnlyMiddleware 跟在AuthMiddleware后面，员工才放行
// ID列表和两个统计接口都挂这个
func StaffOnlyMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := IdentityFromContext(c)
		if !id.CanViewStatistics() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "该接口仅对员工开放"})
			return
		}
		c.Next()
	}
}
