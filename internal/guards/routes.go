package guards

import "fmt"

// Routes of the client application. Guards navigate to these; front ends map
// them onto whatever they render.
const (
	RouteLanding       = "/"
	RouteLogin         = "/login"
	RouteSignup        = "/signup"
	RouteMain          = "/main"
	RouteMyPage        = "/mypage"
	RouteStoreCreate   = "/store/create"
	RoutePostCreate    = "/post/create"
	RouteFindID        = "/find-id"
	RouteResetPassword = "/reset-password"
)

func RoutePostDetail(id uint) string {
	return fmt.Sprintf("/post/%d", id)
}

// Navigator performs a navigation side effect.
type Navigator interface {
	Navigate(route string)
}

type NavigatorFunc func(route string)

func (f NavigatorFunc) Navigate(route string) {
	f(route)
}
