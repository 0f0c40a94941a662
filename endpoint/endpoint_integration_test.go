// +build integration

package endpoint

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gatortrader/gatortrader-api/db"
	. "github.com/gatortrader/gatortrader-api/internal/testutil"
	"github.com/gatortrader/gatortrader-api/internal/testutil/rest"
	"github.com/gatortrader/gatortrader-api/internal/testutil/schemas"
	m "github.com/gatortrader/gatortrader-api/rest/models"
	"github.com/gatortrader/gatortrader-api/types"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("DataEndpoint integration", func() {
	var endpoint *DataEndpoint

	BeforeEach(func() {
		if !IntegrationTestsEnabled() {
			Skip("Integration tests are not enabled")
		}
		cfg := NewEndpointConfigWithLogger(TestLogger())
		endpoint = cfg.newEndpointWithDb(SetupIntegrationTestFixture("gatortrader"))
	})

	AfterEach(func() {
		if endpoint != nil {
			_ = endpoint.Close()
		}
		TearDownIntegrationTestFixture()
	})

	Describe("RoutesREST()", func() {
		var routes []types.Route

		BeforeEach(func() {
			routes = endpoint.RoutesREST(rest.Prefix)
		})

		It("Should search posts by name and category sorted by price", func() {
			var response m.Response
			code := rest.ExecuteGet(routes, "/post/search?name=textbook&category=1&sort=price_asc", &response)
			Expect(code).To(Equal(http.StatusOK))

			posts := response.Data.([]interface{})
			Expect(posts).To(HaveLen(2))
			Expect(posts[0]).To(HaveKeyWithValue("title", "Physics textbook"))
			Expect(posts[1]).To(HaveKeyWithValue("title", "Calculus textbook"))
			Expect(posts[1]).To(HaveKeyWithValue("price", "45.50"))
		})

		It("Should return the recent posts newest first", func() {
			var response m.Response
			code := rest.ExecuteGet(routes, "/post/recent", &response)
			Expect(code).To(Equal(http.StatusOK))

			posts := response.Data.([]interface{})
			Expect(posts).To(HaveLen(5))
			Expect(posts[0]).To(HaveKeyWithValue("id", float64(5)))
			Expect(posts[4]).To(HaveKeyWithValue("id", float64(1)))
		})

		It("Should return a post with its category", func() {
			var response m.Response
			code := rest.ExecuteGet(routes, "/post/2", &response)
			Expect(code).To(Equal(http.StatusOK))

			post := response.Data.(map[string]interface{})
			Expect(post).To(HaveKeyWithValue("title", "Desk"))
			Expect(post).To(HaveKeyWithValue("createdAt", "2020-03-02T10:00:00Z"))
			Expect(post["category"]).To(Equal(map[string]interface{}{"id": float64(2), "name": "Furniture"}))
		})

		It("Should return 404 for a missing post", func() {
			var response m.ModelError
			code := rest.ExecuteGet(routes, "/post/999", &response)
			Expect(code).To(Equal(http.StatusNotFound))
			Expect(response.Description).To(Equal("post 999 not found"))
		})

		It("Should list the categories by name", func() {
			var response m.Response
			code := rest.ExecuteGet(routes, "/category", &response)
			Expect(code).To(Equal(http.StatusOK))
			Expect(response.Data).To(Equal([]interface{}{
				map[string]interface{}{"id": float64(1), "name": "Books"},
				map[string]interface{}{"id": float64(3), "name": "Electronics"},
				map[string]interface{}{"id": float64(2), "name": "Furniture"},
			}))
		})

		It("Should insert a user and reject a duplicated email", func() {
			email := fmt.Sprintf("user%d@ufl.edu", time.Now().UnixNano())
			payload := fmt.Sprintf(`{"email":"%s","name":"New user"}`, email)

			var response m.Response
			code := rest.ExecutePost(routes, "/user", payload, &response)
			Expect(code).To(Equal(http.StatusCreated))
			Expect(response.Data).To(HaveKeyWithValue("status", true))

			var errResponse m.ModelError
			code = rest.ExecutePost(routes, "/user", payload, &errResponse)
			Expect(code).To(Equal(http.StatusConflict))
			Expect(errResponse.Description).To(Equal(db.InsertFailedMessage))
		})

		It("Should update a user field", func() {
			var response m.Response
			code := rest.ExecutePatch(routes, "/user/1", `{"field":"name","value":"Albert Gator"}`, &response)
			Expect(code).To(Equal(http.StatusOK))
			Expect(response.Data).To(HaveKeyWithValue("message",
				"Updated record id: 1, attribute: name, to new value: Albert Gator"))
		})
	})

	Describe("RoutesGraphQL()", func() {
		It("Should return a category with its posts", func() {
			routes, err := endpoint.RoutesGraphQL("/graphql")
			Expect(err).ToNot(HaveOccurred())

			buffer := schemas.ExecutePostWithVariables(routes, "/graphql",
				`query ($id: Int!) { category(id: $id) { name posts { title } } }`,
				map[string]interface{}{"id": 2})

			Expect(schemas.DecodeData(buffer, "category")).To(Equal(map[string]interface{}{
				"name": "Furniture",
				"posts": []interface{}{
					map[string]interface{}{"title": "Desk"},
					map[string]interface{}{"title": "Desk lamp"},
				},
			}))
		})
	})
})
