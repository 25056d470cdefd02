package httpserver

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"storefront/internal/domain"
	authsvc "storefront/internal/service/auth"
	productsvc "storefront/internal/service/product"
)

const (
	adminToken = "admin-token"
	userToken  = "user-token"
)

var (
	adminIdentity = domain.Identity{ID: "11111111-1111-1111-1111-111111111111", Name: "Admin", Email: "admin@example.com", Role: domain.RoleAdmin}
	userIdentity  = domain.Identity{ID: "22222222-2222-2222-2222-222222222222", Name: "User", Email: "user@example.com", Role: domain.RoleUser}
)

type stubAuthService struct {
	registerErr  error
	loginErr     error
	lastRegister authsvc.RegisterInput
	lastUpdateID string
	lastUpdate   authsvc.UpdateInput
	updateErr    error
	users        []domain.Identity
}

func (s *stubAuthService) Register(_ context.Context, in authsvc.RegisterInput) (string, domain.Identity, error) {
	s.lastRegister = in
	if s.registerErr != nil {
		return "", domain.Identity{}, s.registerErr
	}
	return userToken, domain.Identity{ID: "new-user", Name: in.Name, Email: in.Email, Role: domain.RoleUser}, nil
}

func (s *stubAuthService) Login(_ context.Context, email, _ string) (string, domain.Identity, error) {
	if s.loginErr != nil {
		return "", domain.Identity{}, s.loginErr
	}
	return userToken, domain.Identity{ID: userIdentity.ID, Email: email, Role: domain.RoleUser}, nil
}

func (s *stubAuthService) VerifyToken(_ context.Context, token string) (domain.Identity, error) {
	switch token {
	case adminToken:
		return domain.Identity{ID: adminIdentity.ID, Role: domain.RoleAdmin}, nil
	case userToken:
		return domain.Identity{ID: userIdentity.ID, Role: domain.RoleUser}, nil
	}
	return domain.Identity{}, domain.ErrUnauthenticated
}

func (s *stubAuthService) Profile(_ context.Context, id domain.Identity) (domain.Identity, error) {
	switch id.ID {
	case adminIdentity.ID:
		return adminIdentity, nil
	case userIdentity.ID:
		return userIdentity, nil
	}
	return domain.Identity{}, domain.ErrUserNotFound
}

func (s *stubAuthService) ListUsers(context.Context) ([]domain.Identity, error) {
	return s.users, nil
}

func (s *stubAuthService) UpdateUser(_ context.Context, actor domain.Identity, id string, in authsvc.UpdateInput) (domain.Identity, error) {
	s.lastUpdateID = id
	s.lastUpdate = in
	if s.updateErr != nil {
		return domain.Identity{}, s.updateErr
	}
	if actor.ID != id && actor.Role != domain.RoleAdmin {
		return domain.Identity{}, domain.ErrForbidden
	}
	out := userIdentity
	out.ID = id
	if in.Name != nil {
		out.Name = *in.Name
	}
	return out, nil
}

type stubProductService struct {
	products     []domain.Product
	lastCategory domain.Category
	lastCreate   *productsvc.CreateInput
	lastUpdate   *productsvc.UpdateInput
	lastDeleteID string
	err          error
}

func (s *stubProductService) List(_ context.Context, category domain.Category) ([]domain.Product, error) {
	s.lastCategory = category
	return s.products, s.err
}

func (s *stubProductService) Get(_ context.Context, id string) (*domain.Product, error) {
	if s.err != nil {
		return nil, s.err
	}
	for _, p := range s.products {
		if p.ID == id {
			p := p
			return &p, nil
		}
	}
	return nil, domain.ErrProductNotFound
}

func (s *stubProductService) Create(_ context.Context, in productsvc.CreateInput) (*domain.Product, error) {
	s.lastCreate = &in
	if s.err != nil {
		return nil, s.err
	}
	p, err := productsvc.Build(in)
	if err != nil {
		return nil, err
	}
	p.ID = "p-new"
	return &p, nil
}

func (s *stubProductService) Update(_ context.Context, id string, in productsvc.UpdateInput) (*domain.Product, error) {
	s.lastUpdate = &in
	p, err := s.Get(context.Background(), id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		p.Name = *in.Name
	}
	return p, nil
}

func (s *stubProductService) Delete(_ context.Context, id string) error {
	s.lastDeleteID = id
	_, err := s.Get(context.Background(), id)
	return err
}

type stubCategoryService struct{}

func (stubCategoryService) List(context.Context) ([]domain.CategoryInfo, error) {
	return []domain.CategoryInfo{
		{Key: domain.CategoryMakeup, Name: "Makeup", ProductCount: 5},
		{Key: domain.CategoryAccessories, Name: "Accessories", ProductCount: 5},
	}, nil
}

type stubCartService struct {
	view       *domain.CartView
	err        error
	lastUserID string
	lastProdID string
	lastQty    int
	cleared    bool
}

func (s *stubCartService) result(userID string) (*domain.CartView, error) {
	s.lastUserID = userID
	if s.err != nil {
		return nil, s.err
	}
	if s.view == nil {
		return &domain.CartView{UserID: userID, Lines: []domain.CartLine{}}, nil
	}
	return s.view, nil
}

func (s *stubCartService) Get(_ context.Context, userID string) (*domain.CartView, error) {
	return s.result(userID)
}

func (s *stubCartService) AddItem(_ context.Context, userID, productID string, quantity int) (*domain.CartView, error) {
	s.lastProdID, s.lastQty = productID, quantity
	return s.result(userID)
}

func (s *stubCartService) UpdateQuantity(_ context.Context, userID, productID string, quantity int) (*domain.CartView, error) {
	s.lastProdID, s.lastQty = productID, quantity
	return s.result(userID)
}

func (s *stubCartService) RemoveItem(_ context.Context, userID, productID string) (*domain.CartView, error) {
	s.lastProdID = productID
	return s.result(userID)
}

func (s *stubCartService) Clear(_ context.Context, userID string) (*domain.CartView, error) {
	s.cleared = true
	return s.result(userID)
}

func logDiscard() *zap.Logger {
	return zap.NewNop()
}

func testDeps() Deps {
	return Deps{
		AuthSvc:     &stubAuthService{},
		ProductSvc:  &stubProductService{},
		CategorySvc: stubCategoryService{},
		CartSvc:     &stubCartService{},
	}
}

func newTestRouter(t *testing.T, deps Deps) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router, err := buildRouter(logDiscard(), deps, []string{"http://localhost:4200"})
	if err != nil {
		t.Fatalf("build router: %v", err)
	}
	return router
}

func doRequest(router http.Handler, method, path, token, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return serve(router, req)
}

func newRequest(method, path string) *http.Request {
	return httptest.NewRequest(method, path, nil)
}

func newPreflight(origin string) *http.Request {
	req := httptest.NewRequest(http.MethodOptions, "/api/products", nil)
	req.Header.Set("Origin", origin)
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "Authorization, Content-Type")
	return req
}

func serve(router http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorResponse {
	t.Helper()
	var body errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode error body %q: %v", rec.Body.String(), err)
	}
	return body
}
