package rest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"github.com/gatortrader/gatortrader-api/types"
	"github.com/julienschmidt/httprouter"
	. "github.com/onsi/gomega"
	"io"
	"net/http"
	"net/http/httptest"
	"reflect"
)

const Prefix = "/api"

func ExecuteGet(routes []types.Route, target string, responsePtr interface{}) int {
	return execute(http.MethodGet, routes, target, "", responsePtr)
}

func ExecutePost(routes []types.Route, target string, requestBody string, responsePtr interface{}) int {
	return execute(http.MethodPost, routes, target, requestBody, responsePtr)
}

func ExecutePatch(routes []types.Route, target string, requestBody string, responsePtr interface{}) int {
	return execute(http.MethodPatch, routes, target, requestBody, responsePtr)
}

// execute serves the request through a router holding every route, so path
// parameters are populated. Target is relative to Prefix.
func execute(
	method string,
	routes []types.Route,
	target string,
	requestBody string,
	responsePtr interface{},
) int {
	rv := reflect.ValueOf(responsePtr)
	if responsePtr != nil && rv.Kind() != reflect.Ptr {
		panic("Provided value should be a pointer or nil")
	}

	var body io.Reader = nil
	if requestBody != "" {
		body = bytes.NewBuffer([]byte(requestBody))
	}

	r := httptest.NewRequest(method, Prefix+target, body)
	if body != nil {
		r.Header.Set("Content-Type", "application/json")
	}

	router := httprouter.New()
	for _, route := range routes {
		router.Handler(route.Method, route.Pattern, route.Handler)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	if responsePtr != nil && w.Code != http.StatusNoContent {
		bodyString := w.Body.String()
		err := json.NewDecoder(bytes.NewBufferString(bodyString)).Decode(responsePtr)
		Expect(err).ToNot(HaveOccurred(),
			fmt.Sprintf("Error decoding response with code %d and body: %s", w.Code, bodyString))
	}

	return w.Code
}
