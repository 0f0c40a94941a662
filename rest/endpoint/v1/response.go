package endpoint

import (
	"encoding/json"
	"net/http"

	e "github.com/gatortrader/gatortrader-api/rest/errors"
	m "github.com/gatortrader/gatortrader-api/rest/models"
)

// RespondJSONObjectWithCode writes the object and status header to the response. Important to note that if this is being
// used for an error case then an empty return will need to immediately follow the call to this function
func RespondJSONObjectWithCode(w http.ResponseWriter, code int, obj interface{}) {
	setCommonHeaders(w)
	var err error
	var jsonBytes []byte
	if obj != nil {
		jsonBytes, err = json.Marshal(obj)
	}
	writeJSONBytes(w, jsonBytes, err, code)
}

// RespondWithData wraps data in the response envelope.
func RespondWithData(w http.ResponseWriter, code int, data interface{}) {
	RespondJSONObjectWithCode(w, code, m.Response{Data: data})
}

func writeJSONBytes(w http.ResponseWriter, jsonBytes []byte, err error, code int) {
	if err != nil {
		jsonBytes, _ = json.Marshal(m.ModelError{Description: "unable to marshal response"})
		code = http.StatusInternalServerError
	}

	w.WriteHeader(code)
	if jsonBytes != nil {
		_, _ = w.Write(jsonBytes)
	}
}

func RespondWithError(w http.ResponseWriter, err error, code int) {
	requestError := m.ModelError{
		Description: err.Error(),
	}
	RespondJSONObjectWithCode(w, code, requestError)
}

// RespondWithRequestError writes err with the status it carries, see
// errors.StatusCode.
func RespondWithRequestError(w http.ResponseWriter, err error) {
	RespondWithError(w, err, e.StatusCode(err))
}

func setCommonHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
}
