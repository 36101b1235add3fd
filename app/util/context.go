package util

import "context"

type ContextKey string

func (c ContextKey) String() string {
	return "naapi_" + string(c)
}

var UserContextKey = ContextKey("user")
var IpContextKey ContextKey = "ip"

func GetIpFromContext(ctx context.Context) string {
	ip, _ := ctx.Value(IpContextKey).(string)
	return ip
}
