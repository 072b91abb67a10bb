package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	appInventory "github.com/oaktree-io/storefront/internal/application/inventory"
	appOrder "github.com/oaktree-io/storefront/internal/application/order"
	appPayment "github.com/oaktree-io/storefront/internal/application/payment"
	appShipment "github.com/oaktree-io/storefront/internal/application/shipment"
	"github.com/oaktree-io/storefront/internal/config"
	"github.com/oaktree-io/storefront/internal/domain/catalog"
	"github.com/oaktree-io/storefront/internal/domain/customer"
	"github.com/oaktree-io/storefront/internal/domain/warehouse"
	"github.com/oaktree-io/storefront/internal/infrastructure/courier"
	"github.com/oaktree-io/storefront/internal/infrastructure/gateway"
	"github.com/oaktree-io/storefront/internal/infrastructure/id"
	"github.com/oaktree-io/storefront/internal/infrastructure/memory"
	infraobs "github.com/oaktree-io/storefront/internal/infrastructure/observability"
	"github.com/oaktree-io/storefront/internal/infrastructure/observability/oteltrace"
	"github.com/oaktree-io/storefront/internal/infrastructure/observability/prometrics"
	"github.com/oaktree-io/storefront/internal/infrastructure/observability/zaplogger"
	"github.com/oaktree-io/storefront/internal/observability"
	httptransport "github.com/oaktree-io/storefront/internal/presentation/http"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	logger := zaplogger.New(
		observability.F("service", cfg.App.Name),
		observability.F("env", cfg.App.Env),
	)

	registry := prometrics.New("", "")
	counters := map[observability.MetricKey]observability.Counter{
		observability.MUsecaseRequests: registry.Counter(
			string(observability.MUsecaseRequests),
			"Total number of use case invocations.",
			"use_case", "outcome",
		),
		observability.MHTTPRequests: registry.Counter(
			string(observability.MHTTPRequests),
			"Total number of HTTP requests.",
			"method", "route", "status",
		),
		observability.MExternalRequests: registry.Counter(
			string(observability.MExternalRequests),
			"Total number of calls to external collaborators.",
			"peer", "endpoint", "outcome",
		),
	}
	histograms := map[observability.MetricKey]observability.Histogram{
		observability.MUsecaseDuration: registry.Histogram(
			string(observability.MUsecaseDuration),
			"Duration of use case execution in seconds.",
			prometheus.DefBuckets,
			"use_case",
		),
		observability.MHTTPRequestDuration: registry.Histogram(
			string(observability.MHTTPRequestDuration),
			"Duration of HTTP requests in seconds.",
			prometheus.DefBuckets,
			"method", "route", "status",
		),
		observability.MExternalRequestDuration: registry.Histogram(
			string(observability.MExternalRequestDuration),
			"Duration of external collaborator calls in seconds.",
			prometheus.DefBuckets,
			"peer", "endpoint",
		),
	}
	tel := infraobs.New(oteltrace.New(cfg.App.Name), logger, counters, histograms)

	idGenerator := id.NewUUIDGenerator()

	orderRepo := memory.NewOrderRepository()
	customerRepo := memory.NewCustomerRepository()

	inventoryService := appInventory.NewService(logger)
	paymentGateway := gateway.NewMockGateway(logger)
	paymentGateway.DeclineAll(cfg.Payment.DeclineAll)
	paymentService := appPayment.NewService(paymentGateway, tel)
	shipmentService := appShipment.NewService(
		courier.NewMockCourier("mock-courier", logger),
		time.Duration(cfg.Shipping.DeliveryETADays)*24*time.Hour,
		tel,
	)
	orderService := appOrder.NewService(
		orderRepo, customerRepo, inventoryService, paymentService, shipmentService, idGenerator, tel,
	)

	cat := catalog.NewCatalog()
	seed(cat, inventoryService, customerRepo, idGenerator, logger)

	handler := httptransport.NewHandler(orderService, inventoryService, cat, idGenerator, logger, tel)
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/", handler.Router())

	server := &http.Server{
		Addr:    cfg.Server.Address(),
		Handler: mux,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("http_server_start",
			observability.F("addr", server.Addr),
		)
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http_server_error",
				observability.F("error", err.Error()),
			)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("http_server_shutdown_error",
			observability.F("error", err.Error()),
		)
	} else {
		logger.Info("http_server_stopped")
	}
}

// seed loads the demo catalog, warehouses, and accounts so the service is
// usable out of the box.
func seed(
	cat *catalog.Catalog,
	inventory *appInventory.Service,
	customers *memory.CustomerRepository,
	ids *id.UUIDGenerator,
	logger observability.Logger,
) {
	electronics := catalog.NewCategory(ids.NewID(), "Electronics")
	books := catalog.NewCategory(ids.NewID(), "Books")

	physical := catalog.NewPhysicalFactory(ids)
	digital := catalog.NewDigitalFactory(ids)

	phone, err := physical.Create(catalog.ProductSpec{
		Name:        "Smartphone X",
		Description: "Flagship smartphone",
		Price:       decimal.RequireFromString("450.00"),
		SKU:         "SMX-001",
		Category:    electronics,
	})
	if err == nil {
		_ = cat.Add(phone)
	}

	ebook, err := digital.Create(catalog.ProductSpec{
		Name:     "Ebook: Design Patterns",
		Price:    decimal.RequireFromString("19.99"),
		SKU:      "EB-001",
		Category: books,
	})
	if err == nil {
		_ = cat.Add(ebook)
	}

	wh1 := warehouse.New(ids.NewID(), "WH-A", "Almaty")
	_ = wh1.SetStock("SMX-001", 10)
	_ = wh1.SetStock("EB-001", 1000)
	wh2 := warehouse.New(ids.NewID(), "WH-B", "Nur-Sultan")
	_ = wh2.SetStock("SMX-001", 5)
	inventory.AddWarehouse(wh1)
	inventory.AddWarehouse(wh2)

	alice := customer.New(ids.NewID(), "Alice", "alice@example.com", "Almaty, 123", "+7701")
	_ = customers.Save(context.Background(), alice)

	logger.Info("seed_loaded",
		observability.F("products", 2),
		observability.F("warehouses", 2),
		observability.F("demo_customer_id", alice.ID),
	)
}
