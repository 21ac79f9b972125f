package utils

import (
	"fmt"

	"github.com/gin-gonic/gin"
)

// ActiveOperator returns the authenticated console operator stored on the
// request context by the auth middleware.
func ActiveOperator(ctx *gin.Context) (TokenObject, error) {
	value, exists := ctx.Get("user")
	if !exists {
		return TokenObject{}, fmt.Errorf("no authenticated operator on request")
	}

	operator, ok := value.(TokenObject)
	if !ok {
		return TokenObject{}, fmt.Errorf("unexpected operator type on request")
	}

	return operator, nil
}

// IsSuperAdmin reports whether the operator holds the console's only
// privileged role.
func IsSuperAdmin(operator TokenObject) bool {
	return operator.Role == "super_admin"
}
