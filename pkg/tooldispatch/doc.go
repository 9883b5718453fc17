// Package tooldispatch routes model function calls to registered tools.
//
// Invariants:
// - Tool names are unique; a duplicate registration fails and the first binding stays intact.
// - Declarations() lists one record per tool in registration order.
// - Handle returns exactly one response envelope per call, carrying the request's
//   correlation id; request-path failures surface inside the envelope, never as
//   an error or panic.
//
// Usage:
//
//	reg := tooldispatch.NewRegistry()
//	_ = reg.Register("calc", calcTool)
//	d := tooldispatch.NewDispatcher(reg, tooldispatch.WithAlias("get_weather_on_date", "weather"))
//	env := d.Handle(ctx, tooldispatch.FunctionCall{Name: "calc", Args: args, ID: "x1"})
package tooldispatch
