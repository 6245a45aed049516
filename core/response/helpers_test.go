package response_test

import (
	"net/http"
	"time"
)

// testContext is a simple test implementation of handler.Context
type testContext struct {
	w http.ResponseWriter
	r *http.Request
}

func (tc *testContext) Deadline() (deadline time.Time, ok bool) { return tc.r.Context().Deadline() }
func (tc *testContext) Done() <-chan struct{}                   { return tc.r.Context().Done() }
func (tc *testContext) Err() error                              { return tc.r.Context().Err() }
func (tc *testContext) Value(key any) any                       { return tc.r.Context().Value(key) }
func (tc *testContext) SetValue(key, val any)                   {}
func (tc *testContext) Request() *http.Request                  { return tc.r }
func (tc *testContext) ResponseWriter() http.ResponseWriter     { return tc.w }
func (tc *testContext) Param(key string) string                 { return "" }

// customStatusError is a test error that implements StatusCode() int
type customStatusError struct {
	message string
	status  int
}

func (e customStatusError) Error() string   { return e.message }
func (e customStatusError) StatusCode() int { return e.status }
