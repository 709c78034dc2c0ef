package handlers

import (
	"net/http"
	"strconv"

	"shopapi/middleware"
	"shopapi/models"
	"shopapi/services"

	"github.com/gin-gonic/gin"
)

// GetOrders retrieves all orders for the authenticated user
func GetOrders(c *gin.Context) {
	userID, _ := middleware.UserID(c)

	orders, err := services.ListOrders(db(c), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	views := []models.OrderView{}
	for _, order := range orders {
		views = append(views, models.NewOrderView(order))
	}
	c.JSON(http.StatusOK, gin.H{"orders": views})
}

// GetOrderDetails retrieves one order with items and total item count.
func GetOrderDetails(c *gin.Context) {
	orderID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order ID", "kind": "invalid_input"})
		return
	}

	userID, _ := middleware.UserID(c)

	order, err := services.GetOrder(db(c), userID, uint(orderID))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"order": models.NewOrderDetailView(*order)})
}

// GetAllOrders retrieves every order. Staff only.
func GetAllOrders(c *gin.Context) {
	orders, err := services.ListAllOrders(db(c))
	if err != nil {
		respondError(c, err)
		return
	}

	views := []models.OrderView{}
	for _, order := range orders {
		views = append(views, models.NewOrderView(order))
	}
	c.JSON(http.StatusOK, gin.H{"orders": views})
}

// UpdateOrderStatus moves an order along its lifecycle. Staff only.
func UpdateOrderStatus(c *gin.Context) {
	orderID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order ID", "kind": "invalid_input"})
		return
	}

	var input models.OrderStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "kind": "invalid_input"})
		return
	}

	order, err := services.UpdateOrderStatus(db(c), uint(orderID), input.Status)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "order status updated", "order_id": order.ID, "status": order.Status})
}
