package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/hris-portal-go/internal/config"
	appHTTP "github.com/cmlabs-hris/hris-portal-go/internal/handler/http"
	"github.com/cmlabs-hris/hris-portal-go/internal/pkg/database"
	"github.com/cmlabs-hris/hris-portal-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/hris-portal-go/internal/pkg/sse"
	"github.com/cmlabs-hris/hris-portal-go/internal/repository/postgresql"
	attendanceService "github.com/cmlabs-hris/hris-portal-go/internal/service/attendance"
	dashboardService "github.com/cmlabs-hris/hris-portal-go/internal/service/dashboard"
	employeeService "github.com/cmlabs-hris/hris-portal-go/internal/service/employee"
	leaveService "github.com/cmlabs-hris/hris-portal-go/internal/service/leave"
	noticeService "github.com/cmlabs-hris/hris-portal-go/internal/service/notice"
	payrollService "github.com/cmlabs-hris/hris-portal-go/internal/service/payroll"
	ticketService "github.com/cmlabs-hris/hris-portal-go/internal/service/ticket"
	"github.com/go-chi/httplog/v3"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	logFormat := httplog.SchemaECS.Concise(cfg.App.Env != "production")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       cfg.SlogLevel(),
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "hris-portal"),
		slog.String("env", cfg.App.Env),
	)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolOptions{
		MaxConns:        cfg.Database.MaxConns,
		MinConns:        cfg.Database.MinConns,
		MaxConnLifetime: cfg.Database.MaxConnLifetime,
	})
	if err != nil {
		logger.Error("Error connecting to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	attendanceRepo := postgresql.NewAttendanceRepository(db)
	applicationRepo := postgresql.NewLeaveApplicationRepository(db)
	entitlementRepo := postgresql.NewLeaveEntitlementRepository(db)
	payrollRepo := postgresql.NewPayrollRepository(db)
	ticketRepo := postgresql.NewTicketRepository(db)
	noticeRepo := postgresql.NewNoticeRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	transactor := postgresql.NewTransactor(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo)
	leaveSvc := leaveService.NewLeaveService(transactor, applicationRepo, entitlementRepo, attendanceRepo)
	payrollSvc := payrollService.NewPayrollService(payrollRepo)
	ticketSvc := ticketService.NewTicketService(ticketRepo)
	noticeSvc := noticeService.NewNoticeService(noticeRepo, sse.NewHub(16))
	employeeSvc := employeeService.NewEmployeeService(employeeRepo)
	dashboardSvc := dashboardService.NewDashboardService(attendanceSvc, leaveSvc, noticeSvc)

	router := appHTTP.NewRouter(JWTService, appHTTP.Handlers{
		Attendance: appHTTP.NewAttendanceHandler(attendanceSvc),
		Leave:      appHTTP.NewLeaveHandler(leaveSvc),
		Payroll:    appHTTP.NewPayrollHandler(payrollSvc),
		Ticket:     appHTTP.NewTicketHandler(ticketSvc),
		Notice:     appHTTP.NewNoticeHandler(noticeSvc),
		Employee:   appHTTP.NewEmployeeHandler(employeeSvc),
		Dashboard:  appHTTP.NewDashboardHandler(dashboardSvc),
	}, appHTTP.RouterOptions{
		Logger:         logger,
		LogLevel:       cfg.SlogLevel(),
		AllowedOrigins: cfg.CORS.AllowedOrigins,
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Server running", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}
	logger.Info("Server stopped")
}
