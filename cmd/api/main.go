package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/teamtrack-hq/teamtrack-backend-go/internal/config"
	appHTTP "github.com/teamtrack-hq/teamtrack-backend-go/internal/handler/http"
	"github.com/teamtrack-hq/teamtrack-backend-go/internal/pkg/database"
	"github.com/teamtrack-hq/teamtrack-backend-go/internal/pkg/jwt"
	"github.com/teamtrack-hq/teamtrack-backend-go/internal/repository/postgresql"
	attendanceService "github.com/teamtrack-hq/teamtrack-backend-go/internal/service/attendance"
	leaveService "github.com/teamtrack-hq/teamtrack-backend-go/internal/service/leave"
	statsService "github.com/teamtrack-hq/teamtrack-backend-go/internal/service/stats"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Error loading config: ", err)
	}

	db, err := database.NewPostgreSQLDB(context.Background(), cfg.DatabaseURL(), database.Options{
		MaxConns: int32(cfg.Database.MaxConns),
		MinConns: int32(cfg.Database.MinConns),
	})
	if err != nil {
		log.Fatal("Error connecting to database: ", err)
	}
	defer db.Close()

	userRepo := postgresql.NewUserRepository(db)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	statsRepo := postgresql.NewStatsRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	leaveSvc := leaveService.NewLeaveService(leaveRequestRepo, userRepo, nil)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, cfg.Attendance.WorkStart, cfg.Attendance.WorkEnd)
	statsSvc := statsService.NewStatsService(statsRepo)

	leaveHandler := appHTTP.NewLeaveHandler(leaveSvc)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	statsHandler := appHTTP.NewStatsHandler(statsSvc)

	router := appHTTP.NewRouter(jwtService, leaveHandler, attendanceHandler, statsHandler)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
