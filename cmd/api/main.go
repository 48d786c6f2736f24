package main

import (
	"fmt"
	"net/http"

	"github.com/shiftpulse/timeclock-backend-go/internal/config"
	appHTTP "github.com/shiftpulse/timeclock-backend-go/internal/handler/http"
	"github.com/shiftpulse/timeclock-backend-go/internal/pkg/database"
	"github.com/shiftpulse/timeclock-backend-go/internal/pkg/jwt"
	"github.com/shiftpulse/timeclock-backend-go/internal/repository/postgresql"
	attendanceService "github.com/shiftpulse/timeclock-backend-go/internal/service/attendance"
	authService "github.com/shiftpulse/timeclock-backend-go/internal/service/auth"
	employeeService "github.com/shiftpulse/timeclock-backend-go/internal/service/employee"
	summaryService "github.com/shiftpulse/timeclock-backend-go/internal/service/summary"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	policy, err := cfg.AttendancePolicy()
	if err != nil {
		fmt.Println("Error building attendance policy:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn, int32(cfg.Database.MaxConns))
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	actionLogRepo := postgresql.NewActionLogRepository(db)
	summaryRepo := postgresql.NewSummaryRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)

	authSvc := authService.NewAuthService(employeeRepo, JWTService)
	summarySvc := summaryService.NewSummaryService(db, actionLogRepo, summaryRepo, policy)
	attendanceSvc := attendanceService.NewAttendanceService(actionLogRepo, summarySvc, policy)
	employeeSvc := employeeService.NewEmployeeService(employeeRepo)

	authHandler := appHTTP.NewAuthHandler(JWTService, authSvc)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	summaryHandler := appHTTP.NewSummaryHandler(summarySvc)
	employeeHandler := appHTTP.NewEmployeeHandler(employeeSvc)

	router := appHTTP.NewRouter(
		cfg,
		JWTService,
		authHandler,
		attendanceHandler,
		summaryHandler,
		employeeHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
