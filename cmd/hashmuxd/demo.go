package main

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/hashmux/hashmux/content"
	"github.com/hashmux/hashmux/describe"
	"github.com/hashmux/hashmux/dispatch"
	"github.com/hashmux/hashmux/dispatchhandlers"
)

// demoTable builds the route table hashmuxd serves: a handful of routes
// exercising path variables, query decoding, body negotiation, and macro
// patterns, plus the description endpoints under describePath. The
// middleware chain wraps every demo handler; the description endpoints
// register unwrapped.
func demoTable(describePath string, mws ...dispatch.Middleware) *dispatch.RouteTable {
	table := dispatch.NewRouteTable()

	handle := func(key string, h dispatch.Handler) {
		table.Handle(key, dispatchhandlers.Wrap(h, mws...))
	}

	handle("/#get", func(*dispatch.Context) (*dispatch.Response, error) {
		return dispatch.Text(http.StatusOK, "hashmuxd up\n"), nil
	})

	handle("/hello/{name}#get", func(ctx *dispatch.Context) (*dispatch.Response, error) {
		return dispatch.Text(http.StatusOK, fmt.Sprintf("hello, %s\n", ctx.Params["name"])), nil
	})

	handle("/search#get", func(ctx *dispatch.Context) (*dispatch.Response, error) {
		return dispatch.JSON(http.StatusOK, ctx.Query)
	})

	handle("/echo#post", func(ctx *dispatch.Context) (*dispatch.Response, error) {
		body := content.DecodeBody(ctx.Request)
		if body.Err != nil {
			return dispatch.JSON(http.StatusBadRequest, map[string]string{"error": body.Err.Error()})
		}
		return content.EncodeResponse(ctx.Request, body.Fields), nil
	})

	handle("/status/{code:int}#get", func(ctx *dispatch.Context) (*dispatch.Response, error) {
		code, err := strconv.Atoi(ctx.Params["code"])
		if err != nil {
			return nil, err
		}
		if code < http.StatusContinue || code > 599 {
			return dispatch.Text(http.StatusBadRequest, "status out of range\n"), nil
		}
		return dispatch.Text(code, http.StatusText(code)+"\n"), nil
	})

	spec := describe.New(describe.Info{Title: "hashmuxd", Version: version}, nil)
	spec.Handle(table, describePath, nil)

	return table
}
