package main

import (
	"fmt"
	"net/http"

	"github.com/paylens/attendance-backend-go/internal/config"
	appHTTP "github.com/paylens/attendance-backend-go/internal/handler/http"
	"github.com/paylens/attendance-backend-go/internal/pkg/cron"
	"github.com/paylens/attendance-backend-go/internal/pkg/database"
	"github.com/paylens/attendance-backend-go/internal/pkg/jwt"
	"github.com/paylens/attendance-backend-go/internal/pkg/timesheet"
	"github.com/paylens/attendance-backend-go/internal/repository/postgresql"
	adjustmentService "github.com/paylens/attendance-backend-go/internal/service/adjustment"
	attendanceService "github.com/paylens/attendance-backend-go/internal/service/attendance"
	holidayService "github.com/paylens/attendance-backend-go/internal/service/holiday"
	"github.com/paylens/attendance-backend-go/internal/service/ingest"
	payrollService "github.com/paylens/attendance-backend-go/internal/service/payroll"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	recordRepo := postgresql.NewRecordRepository(db)
	holidayRepo := postgresql.NewHolidayRepository(db)
	adjustmentRepo := postgresql.NewAdjustmentRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	policy := timesheet.DefaultPolicy()
	policy.FullDayHours = cfg.Policy.FullDayHours
	policy.HalfDayMinHours = cfg.Policy.HalfDayMinHours

	ingestSvc := ingest.NewIngestService(recordRepo)
	attendanceSvc := attendanceService.NewAttendanceService(recordRepo, holidayRepo, adjustmentRepo, policy)
	payrollSvc := payrollService.NewPayrollService(recordRepo, holidayRepo, adjustmentRepo, policy, cfg.Policy.DefaultSalary)
	holidaySvc := holidayService.NewHolidayService(holidayRepo)
	adjustmentSvc := adjustmentService.NewAdjustmentService(adjustmentRepo)

	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc, ingestSvc)
	payrollHandler := appHTTP.NewPayrollHandler(payrollSvc)
	holidayHandler := appHTTP.NewHolidayHandler(holidaySvc)
	adjustmentHandler := appHTTP.NewAdjustmentHandler(adjustmentSvc)

	scheduler := cron.NewScheduler()
	cron.NewPayrollJobs(payrollSvc).RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	router := appHTTP.NewRouter(
		JWTService,
		attendanceHandler,
		payrollHandler,
		holidayHandler,
		adjustmentHandler,
		cfg.App.AllowedOrigins,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
