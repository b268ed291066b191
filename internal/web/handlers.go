package web

import (
	"errors"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/frog-cafe/frogcafe/internal/client"
	"github.com/frog-cafe/frogcafe/internal/models"
)

const quantityPrefix = "qty_"

var pageTitles = map[string]string{
	"login.html":          "Sign in",
	"menu.html":           "Menu",
	"order_complete.html": "Order placed",
	"admin.html":          "Admin",
	"display.html":        "Orders",
	"error.html":          "Error",
}

type loginForm struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
}

type orderStatusForm struct {
	StatusID int `form:"status_id" binding:"required,min=1"`
}

type menuItemForm struct {
	DishName     string `form:"dish_name" binding:"required,max=200"`
	Description  string `form:"description"`
	Category     string `form:"category"`
	Image        string `form:"image" binding:"omitempty,url"`
	IsAvailable  bool   `form:"is_available"`
	QuantityLeft string `form:"quantity_left" binding:"omitempty,numeric"`
}

type toadForm struct {
	IsTaken bool `form:"is_taken"`
}

// menuCategory groups available menu items under one heading
type menuCategory struct {
	Name  string
	Items []models.MenuItem
}

func (s *Server) page(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["Title"] = pageTitles[name]
	data["Authenticated"] = getGate(c).Authenticated()
	data["Version"] = s.version
	c.HTML(status, name, data)
}

func (s *Server) renderError(c *gin.Context, status int, message string) {
	data := gin.H{"Title": pageTitles["error.html"], "Status": status, "Message": message, "Version": s.version}
	if _, ok := c.Get(gateKey); ok {
		data["Authenticated"] = getGate(c).Authenticated()
	}
	c.HTML(status, "error.html", data)
}

// handleAPIError renders a failed backend call. A rejected token has
// already been cleared by the client, so the visitor is sent to login.
func (s *Server) handleAPIError(c *gin.Context, err error, message string) {
	switch {
	case client.IsUnauthorized(err):
		s.logger.Info().Str("path", c.Request.URL.Path).Msg("Session rejected by backend, redirecting to login")
		c.Redirect(http.StatusSeeOther, s.link("/"))
	case client.IsForbidden(err):
		s.logger.Warn().Err(err).Str("path", c.Request.URL.Path).Msg("Backend refused the action")
		s.renderError(c, http.StatusForbidden, message+": you are not allowed to do that")
	case client.IsTransport(err):
		s.logger.Warn().Err(err).Msg(message)
		s.renderError(c, http.StatusBadGateway, message+": backend unreachable")
	default:
		s.logger.Warn().Err(err).Msg(message)
		status := client.StatusCode(err)
		if status < 400 || status >= 500 {
			status = http.StatusBadGateway
		}
		s.renderError(c, status, message+": "+detail(err))
	}
}

func detail(err error) string {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		return apiErr.Detail
	}
	return http.StatusText(client.StatusCode(err))
}

func (s *Server) idParam(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		s.renderError(c, http.StatusBadRequest, "Invalid id")
		return 0, false
	}
	return id, true
}

func (s *Server) loginPage(c *gin.Context) {
	if getGate(c).Authenticated() {
		c.Redirect(http.StatusSeeOther, s.link("/menu"))
		return
	}
	s.page(c, http.StatusOK, "login.html", gin.H{"Username": ""})
}

func (s *Server) login(c *gin.Context) {
	var form loginForm
	if err := c.ShouldBind(&form); err != nil {
		s.page(c, http.StatusBadRequest, "login.html", gin.H{
			"Error":    "Enter your username and password",
			"Username": form.Username,
		})
		return
	}

	api := getAPI(c)
	if _, err := api.Login(c.Request.Context(), form.Username, form.Password); err != nil {
		status := http.StatusBadGateway
		message := "Login failed, try again later"
		if client.IsUnauthorized(err) || client.StatusCode(err) == http.StatusBadRequest {
			status = http.StatusUnauthorized
			message = "Invalid username or password"
		}
		s.logger.Info().Err(err).Str("username", form.Username).Msg("Login failed")
		s.page(c, status, "login.html", gin.H{"Error": message, "Username": form.Username})
		return
	}

	s.logger.Info().Str("username", form.Username).Msg("User logged in")
	c.Redirect(http.StatusSeeOther, s.link("/menu"))
}

func (s *Server) logout(c *gin.Context) {
	if err := getGate(c).Logout(); err != nil {
		s.logger.Warn().Err(err).Msg("Failed to clear session")
	}
	c.Redirect(http.StatusSeeOther, s.link("/"))
}

func (s *Server) menuPage(c *gin.Context) {
	items, err := getAPI(c).GetMenu(c.Request.Context())
	if err != nil {
		s.handleAPIError(c, err, "Failed to load menu")
		return
	}
	s.page(c, http.StatusOK, "menu.html", gin.H{"Categories": groupMenu(items)})
}

// groupMenu keeps orderable items and groups them by category name
func groupMenu(items []models.MenuItem) []menuCategory {
	index := map[string]int{}
	var categories []menuCategory
	for _, item := range items {
		if item.SoldOut() {
			continue
		}
		name := item.CategoryName()
		i, ok := index[name]
		if !ok {
			i = len(categories)
			index[name] = i
			categories = append(categories, menuCategory{Name: name})
		}
		categories[i].Items = append(categories[i].Items, item)
	}
	sort.SliceStable(categories, func(i, j int) bool {
		return categories[i].Name < categories[j].Name
	})
	return categories
}

// cartFromForm expands qty_<id>=<n> fields into a list with one entry per unit
func cartFromForm(c *gin.Context) ([]int, error) {
	if err := c.Request.ParseForm(); err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(c.Request.PostForm))
	for key := range c.Request.PostForm {
		if strings.HasPrefix(key, quantityPrefix) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	var items []int
	for _, key := range keys {
		id, err := strconv.Atoi(strings.TrimPrefix(key, quantityPrefix))
		if err != nil || id <= 0 {
			return nil, errors.New("invalid menu item")
		}
		raw := strings.TrimSpace(c.Request.PostForm.Get(key))
		if raw == "" {
			continue
		}
		qty, err := strconv.Atoi(raw)
		if err != nil || qty < 0 || qty > 99 {
			return nil, errors.New("invalid quantity")
		}
		for i := 0; i < qty; i++ {
			items = append(items, id)
		}
	}
	return items, nil
}

func (s *Server) checkout(c *gin.Context) {
	items, err := cartFromForm(c)
	if err != nil {
		s.renderError(c, http.StatusBadRequest, "Invalid order: "+err.Error())
		return
	}
	if len(items) == 0 {
		s.renderError(c, http.StatusBadRequest, "Choose at least one dish")
		return
	}

	api := getAPI(c)
	ctx := c.Request.Context()

	order, err := api.CreateOrder(ctx)
	if err != nil {
		s.handleAPIError(c, err, "Failed to create order")
		return
	}
	if err := api.AddToCart(ctx, order.ID, items); err != nil {
		s.handleAPIError(c, err, "Failed to add items to order")
		return
	}

	s.logger.Info().Int("order_id", order.ID).Int("items", len(items)).Msg("Order placed")
	c.Redirect(http.StatusSeeOther, s.link("/order-complete")+"?order="+strconv.Itoa(order.ID))
}

func (s *Server) orderComplete(c *gin.Context) {
	data := gin.H{}

	if id, err := strconv.Atoi(c.Query("order")); err == nil && id > 0 {
		data["OrderID"] = id
		if getGate(c).Authenticated() {
			order, err := getAPI(c).GetOrder(c.Request.Context(), id)
			if err == nil {
				data["Order"] = order
			} else {
				s.logger.Debug().Err(err).Int("order_id", id).Msg("Order details unavailable")
			}
		}
	}

	s.page(c, http.StatusOK, "order_complete.html", data)
}

func (s *Server) adminPage(c *gin.Context) {
	api := getAPI(c)
	ctx := c.Request.Context()

	orders, err := api.GetOrders(ctx)
	if err != nil {
		s.handleAPIError(c, err, "Failed to load orders")
		return
	}
	menu, err := api.GetMenu(ctx)
	if err != nil {
		s.handleAPIError(c, err, "Failed to load menu")
		return
	}
	toads, err := api.GetToads(ctx)
	if err != nil {
		s.handleAPIError(c, err, "Failed to load toads")
		return
	}

	sort.SliceStable(orders, func(i, j int) bool { return orders[i].ID > orders[j].ID })
	sort.SliceStable(toads, func(i, j int) bool { return toads[i].ID < toads[j].ID })

	s.page(c, http.StatusOK, "admin.html", gin.H{
		"Orders":   orders,
		"Menu":     menu,
		"Toads":    toads,
		"Statuses": models.KnownStatuses,
	})
}

func (s *Server) backToAdmin(c *gin.Context) {
	c.Redirect(http.StatusSeeOther, s.link("/admin"))
}

func (s *Server) adminUpdateOrderStatus(c *gin.Context) {
	id, ok := s.idParam(c)
	if !ok {
		return
	}
	var form orderStatusForm
	if err := c.ShouldBind(&form); err != nil {
		s.renderError(c, http.StatusBadRequest, "Invalid status")
		return
	}
	if _, err := getAPI(c).UpdateOrderStatus(c.Request.Context(), id, form.StatusID); err != nil {
		s.handleAPIError(c, err, "Failed to update order")
		return
	}
	s.backToAdmin(c)
}

func (s *Server) adminDeleteOrder(c *gin.Context) {
	id, ok := s.idParam(c)
	if !ok {
		return
	}
	if err := getAPI(c).DeleteOrder(c.Request.Context(), id); err != nil {
		s.handleAPIError(c, err, "Failed to delete order")
		return
	}
	s.backToAdmin(c)
}

func (s *Server) adminClearOrders(c *gin.Context) {
	if err := getAPI(c).ClearOrders(c.Request.Context()); err != nil {
		s.handleAPIError(c, err, "Failed to clear orders")
		return
	}
	s.backToAdmin(c)
}

// menuItem converts the submitted form to the backend representation
func (f menuItemForm) menuItem() models.MenuItem {
	item := models.MenuItem{
		DishName:    strings.TrimSpace(f.DishName),
		IsAvailable: f.IsAvailable,
	}
	if v := strings.TrimSpace(f.Description); v != "" {
		item.Description = &v
	}
	if v := strings.TrimSpace(f.Category); v != "" {
		item.Category = &v
	}
	if v := strings.TrimSpace(f.Image); v != "" {
		item.Image = &v
	}
	if n, err := strconv.Atoi(strings.TrimSpace(f.QuantityLeft)); err == nil {
		item.QuantityLeft = &n
	}
	return item
}

func (s *Server) adminCreateMenuItem(c *gin.Context) {
	var form menuItemForm
	if err := c.ShouldBind(&form); err != nil {
		s.renderError(c, http.StatusBadRequest, "Invalid menu item")
		return
	}
	if _, err := getAPI(c).CreateMenuItem(c.Request.Context(), form.menuItem()); err != nil {
		s.handleAPIError(c, err, "Failed to create menu item")
		return
	}
	s.backToAdmin(c)
}

func (s *Server) adminUpdateMenuItem(c *gin.Context) {
	id, ok := s.idParam(c)
	if !ok {
		return
	}
	var form menuItemForm
	if err := c.ShouldBind(&form); err != nil {
		s.renderError(c, http.StatusBadRequest, "Invalid menu item")
		return
	}
	if _, err := getAPI(c).UpdateMenuItem(c.Request.Context(), id, form.menuItem()); err != nil {
		s.handleAPIError(c, err, "Failed to update menu item")
		return
	}
	s.backToAdmin(c)
}

func (s *Server) adminDeleteMenuItem(c *gin.Context) {
	id, ok := s.idParam(c)
	if !ok {
		return
	}
	if err := getAPI(c).DeleteMenuItem(c.Request.Context(), id); err != nil {
		s.handleAPIError(c, err, "Failed to delete menu item")
		return
	}
	s.backToAdmin(c)
}

func (s *Server) adminUpdateToad(c *gin.Context) {
	id, ok := s.idParam(c)
	if !ok {
		return
	}
	var form toadForm
	if err := c.ShouldBind(&form); err != nil {
		s.renderError(c, http.StatusBadRequest, "Invalid toad status")
		return
	}
	if _, err := getAPI(c).UpdateToadStatus(c.Request.Context(), id, form.IsTaken); err != nil {
		s.handleAPIError(c, err, "Failed to update toad")
		return
	}
	s.backToAdmin(c)
}

func (s *Server) displayPage(c *gin.Context) {
	orders, err := getAPI(c).GetDisplayData(c.Request.Context())
	if err != nil {
		s.handleAPIError(c, err, "Failed to load display")
		return
	}

	var preparing, ready []models.DisplayOrder
	for _, o := range orders {
		if o.Status == models.StatusIssued {
			ready = append(ready, o)
		} else {
			preparing = append(preparing, o)
		}
	}

	s.page(c, http.StatusOK, "display.html", gin.H{
		"Preparing": preparing,
		"Ready":     ready,
		"Refresh":   int(s.config.DisplayRefresh.Seconds()),
	})
}

func (s *Server) displayFeed(c *gin.Context) {
	orders, err := getAPI(c).GetDisplayData(c.Request.Context())
	if err != nil {
		if client.IsUnauthorized(err) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		s.logger.Warn().Err(err).Msg("Failed to load display feed")
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to load display feed"})
		return
	}
	if orders == nil {
		orders = []models.DisplayOrder{}
	}
	c.JSON(http.StatusOK, orders)
}
