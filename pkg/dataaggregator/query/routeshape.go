package query

type RouteShape struct {
	Identifier string
}
