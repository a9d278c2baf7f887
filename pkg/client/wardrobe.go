package client

import (
	"net/url"
)

// WardrobeClient is a thin typed wrapper over the HTTP API, used by the
// integration suite and the operator tooling.
type WardrobeClient struct {
	httpClient *HttpClient
}

func NewWardrobeClient(baseURL string) *WardrobeClient {
	return &WardrobeClient{httpClient: NewHttpClient(baseURL)}
}

// As returns a client that authenticates every call with token.
func (c *WardrobeClient) As(token string) *WardrobeClient {
	return &WardrobeClient{httpClient: c.httpClient.WithToken(token)}
}

func (c *WardrobeClient) HTTP() *HttpClient {
	return c.httpClient
}

func (c *WardrobeClient) Register(body any) (*Response, error) {
	return c.httpClient.POST("/api/auth/register", body)
}

func (c *WardrobeClient) Login(body any) (*Response, error) {
	return c.httpClient.POST("/api/auth/login", body)
}

func (c *WardrobeClient) Me() (*Response, error) {
	return c.httpClient.GET("/api/auth/me")
}

func (c *WardrobeClient) ListCostumes(category, search string) (*Response, error) {
	q := url.Values{}
	if category != "" {
		q.Set("category", category)
	}
	if search != "" {
		q.Set("search", search)
	}
	path := "/api/costumes"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}
	return c.httpClient.GET(path)
}

func (c *WardrobeClient) GetCostume(id string) (*Response, error) {
	return c.httpClient.GET("/api/costumes/" + url.PathEscape(id))
}

func (c *WardrobeClient) CreateCostume(body any) (*Response, error) {
	return c.httpClient.POST("/api/costumes", body)
}

func (c *WardrobeClient) UpdateCostume(id string, body any) (*Response, error) {
	return c.httpClient.PUT("/api/costumes/"+url.PathEscape(id), body)
}

func (c *WardrobeClient) DeleteCostume(id string) (*Response, error) {
	return c.httpClient.DELETE("/api/costumes/" + url.PathEscape(id))
}

func (c *WardrobeClient) CreateBooking(body any, idempotencyKey string) (*Response, error) {
	var headers map[string]string
	if idempotencyKey != "" {
		headers = map[string]string{"Idempotency-Key": idempotencyKey}
	}
	return c.httpClient.POSTWithHeaders("/api/bookings", body, headers)
}

func (c *WardrobeClient) MyBookings() (*Response, error) {
	return c.httpClient.GET("/api/bookings")
}

func (c *WardrobeClient) AllBookings() (*Response, error) {
	return c.httpClient.GET("/api/admin/bookings")
}

func (c *WardrobeClient) SetBookingStatus(id, status string) (*Response, error) {
	return c.httpClient.PUT("/api/admin/bookings/"+url.PathEscape(id)+"/status", map[string]string{"status": status})
}
