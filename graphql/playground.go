package graphql

import (
	"github.com/julienschmidt/httprouter"
	"html/template"
	"net/http"
)

const playgroundVersion = "1.7.20"

var playgroundPage = template.Must(template.New("playground").Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8"/>
  <title>GatorTrader GraphQL</title>
  <link rel="stylesheet" href="//cdn.jsdelivr.net/npm/graphql-playground-react@{{.Version}}/build/static/css/index.css"/>
  <script src="//cdn.jsdelivr.net/npm/graphql-playground-react@{{.Version}}/build/static/js/middleware.js"></script>
</head>
<body style="margin: 0">
  <div id="root" data-endpoint="{{.Endpoint}}" style="height: 100vh"></div>
  <script>
    window.addEventListener('load', function () {
      var root = document.getElementById('root');
      GraphQLPlayground.init(root, {endpoint: root.dataset.endpoint});
    });
  </script>
</body>
</html>
`))

// GetPlaygroundHandle serves a GraphQL playground pointed at defaultEndpointUrl.
func GetPlaygroundHandle(defaultEndpointUrl string) httprouter.Handle {
	data := struct {
		Version  string
		Endpoint string
	}{playgroundVersion, defaultEndpointUrl}

	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		w.Header().Set("Content-Type", "text/html; charset=UTF-8")
		_ = playgroundPage.Execute(w, data)
	}
}
