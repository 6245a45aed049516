package response

import (
	"encoding/json"
	"net/http"

	"github.com/dmitrymomot/nodepop/core/handler"
)

// JSON creates an application/json response with 200 OK status.
func JSON(v any) handler.Response {
	return JSONWithStatus(v, http.StatusOK)
}

// JSONWithStatus creates an application/json response with custom status code.
// The value is encoded before the header is written, so an encoding failure
// still reaches the error handler with a clean writer.
func JSONWithStatus(v any, status int) handler.Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		if status == 0 {
			status = http.StatusOK
		}

		body, err := json.Marshal(v)
		if err != nil {
			return err
		}

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(status)
		if status == http.StatusNoContent || status == http.StatusNotModified {
			return nil
		}
		_, err = w.Write(append(body, '\n'))
		return err
	}
}
