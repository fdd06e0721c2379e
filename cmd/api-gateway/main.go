package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/noah-isme/hrms-lite-api/api/swagger"
	"github.com/noah-isme/hrms-lite-api/internal/handler"
	"github.com/noah-isme/hrms-lite-api/internal/middleware"
	"github.com/noah-isme/hrms-lite-api/internal/repository"
	"github.com/noah-isme/hrms-lite-api/internal/service"
	"github.com/noah-isme/hrms-lite-api/pkg/config"
	"github.com/noah-isme/hrms-lite-api/pkg/database"
	"github.com/noah-isme/hrms-lite-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/hrms-lite-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/hrms-lite-api/pkg/middleware/requestid"
)

// @title HRMS Lite API
// @version 1.0.0
// @description A lightweight Human Resource Management System API
// @BasePath /
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to database", "error", err)
	}
	defer db.Close()

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	validate := validator.New()

	employeeRepo := repository.NewEmployeeRepository(db)
	attendanceRepo := repository.NewAttendanceRepository(db)
	dashboardRepo := repository.NewDashboardRepository(db)

	metricsSvc := service.NewMetricsService()
	employeeSvc := service.NewEmployeeService(employeeRepo, validate, logr)
	attendanceSvc := service.NewAttendanceService(attendanceRepo, employeeRepo, validate, logr)
	dashboardSvc := service.NewDashboardService(dashboardRepo, logr)

	employeeHandler := handler.NewEmployeeHandler(employeeSvc)
	attendanceHandler := handler.NewAttendanceHandler(attendanceSvc)
	dashboardHandler := handler.NewDashboardHandler(dashboardSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(middleware.Metrics(metricsSvc))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "HRMS Lite API is running", "version": "1.0.0"})
	})
	r.GET("/metrics", metricsHandler.Prometheus)

	api := r.Group(cfg.APIPrefix)
	api.GET("/health", metricsHandler.Health)

	employees := api.Group("/employees")
	employees.GET("", employeeHandler.List)
	employees.POST("", employeeHandler.Create)
	employees.GET("/:employee_id", employeeHandler.Get)
	employees.DELETE("/:employee_id", employeeHandler.Delete)

	attendance := api.Group("/attendance")
	attendance.GET("", attendanceHandler.List)
	attendance.POST("", attendanceHandler.Mark)
	attendance.GET("/employee/:employee_id", attendanceHandler.ListForEmployee)
	attendance.GET("/employee/:employee_id/summary", attendanceHandler.Summary)

	api.GET("/dashboard/summary", dashboardHandler.Summary)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
