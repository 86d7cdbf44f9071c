package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"bizboost/internal/models"
)

// ExportService renders registrations and applications as CSV downloads.
// Rows are comma-joined without quoting, so a value containing a comma
// shifts later columns. Admins consuming these exports know the data and
// accept the tradeoff for spreadsheet-pasteable output.
type ExportService interface {
	RegistrationsCSV(ctx context.Context, status string, limit, offset int) (string, error)
	ApplicationsCSV(ctx context.Context, status string, limit, offset int) (string, error)
	UsersCSV(ctx context.Context, limit, offset int) (string, error)
	ProgramsCSV(ctx context.Context, status string, limit, offset int) (string, error)
	AnalyticsCSV(ctx context.Context, timeRange string) (string, error)
}

type exportService struct {
	registrationSvc RegistrationService
	applicationSvc  ApplicationService
	userSvc         UserService
	programSvc      ProgramService
	analyticsSvc    AnalyticsService
}

func NewExportService(registrationSvc RegistrationService, applicationSvc ApplicationService, userSvc UserService, programSvc ProgramService, analyticsSvc AnalyticsService) ExportService {
	return &exportService{
		registrationSvc: registrationSvc,
		applicationSvc:  applicationSvc,
		userSvc:         userSvc,
		programSvc:      programSvc,
		analyticsSvc:    analyticsSvc,
	}
}

var registrationCSVHeader = []string{
	"Reference Number", "Full Name", "Email", "Mobile Number", "Business Name",
	"Business Category", "Business Location", "Business Type", "Number of Employees",
	"Monthly Revenue", "Years in Operation", "BEEE Level", "Selected Services",
	"Status", "Submitted At",
}

func (s *exportService) RegistrationsCSV(ctx context.Context, status string, limit, offset int) (string, error) {
	registrations, err := s.registrationSvc.List(ctx, status, limit, offset)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString(strings.Join(registrationCSVHeader, ","))
	sb.WriteByte('\n')
	for _, reg := range registrations {
		sb.WriteString(registrationCSVRow(reg))
		sb.WriteByte('\n')
	}
	return sb.String(), nil
}

func registrationCSVRow(reg *models.BusinessRegistration) string {
	return strings.Join([]string{
		reg.ReferenceNumber,
		reg.FullName,
		reg.Email,
		reg.MobileNumber,
		reg.BusinessName,
		reg.BusinessCategory,
		reg.BusinessLocation,
		reg.BusinessType,
		reg.NumberOfEmployees,
		reg.MonthlyRevenue,
		strconv.Itoa(reg.YearsInOperation),
		reg.BEEELevel,
		strings.Join(reg.SelectedServices, "; "),
		reg.Status,
		reg.SubmittedAt.Format(time.RFC3339),
	}, ",")
}

var applicationCSVHeader = []string{
	"Application ID", "Program ID", "Applicant ID", "Business ID", "Status", "Submitted At",
}

func (s *exportService) ApplicationsCSV(ctx context.Context, status string, limit, offset int) (string, error) {
	applications, err := s.applicationSvc.List(ctx, status, limit, offset)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString(strings.Join(applicationCSVHeader, ","))
	sb.WriteByte('\n')
	for _, app := range applications {
		sb.WriteString(strings.Join([]string{
			app.ID.String(),
			app.ProgramID.String(),
			app.ApplicantID.String(),
			app.BusinessID.String(),
			app.Status,
			app.SubmittedAt.Format(time.RFC3339),
		}, ","))
		sb.WriteByte('\n')
	}
	return sb.String(), nil
}

var userCSVHeader = []string{"ID", "Email", "Full Name", "Mobile Number", "Created At"}

func (s *exportService) UsersCSV(ctx context.Context, limit, offset int) (string, error) {
	users, err := s.userSvc.List(ctx, limit, offset)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString(strings.Join(userCSVHeader, ","))
	sb.WriteByte('\n')
	for _, user := range users {
		sb.WriteString(strings.Join([]string{
			user.ID.String(),
			user.Email,
			user.FullName,
			user.MobileNumber,
			user.CreatedAt.Format(time.RFC3339),
		}, ","))
		sb.WriteByte('\n')
	}
	return sb.String(), nil
}

var programCSVHeader = []string{
	"ID", "Name", "Status", "Start Date", "End Date", "Application Deadline", "Capacity", "Created At",
}

func (s *exportService) ProgramsCSV(ctx context.Context, status string, limit, offset int) (string, error) {
	programs, err := s.programSvc.List(ctx, status, limit, offset)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString(strings.Join(programCSVHeader, ","))
	sb.WriteByte('\n')
	for _, program := range programs {
		sb.WriteString(strings.Join([]string{
			program.ID.String(),
			program.Name,
			program.Status,
			formatOptionalDate(program.StartDate),
			formatOptionalDate(program.EndDate),
			formatOptionalDate(program.ApplicationDeadline),
			strconv.Itoa(program.Capacity),
			program.CreatedAt.Format(time.RFC3339),
		}, ","))
		sb.WriteByte('\n')
	}
	return sb.String(), nil
}

func formatOptionalDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}

var analyticsCSVHeader = []string{"Bucket", "Registrations", "Applications"}

func (s *exportService) AnalyticsCSV(ctx context.Context, timeRange string) (string, error) {
	analytics, err := s.analyticsSvc.GetDashboard(ctx, timeRange)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString(strings.Join(analyticsCSVHeader, ","))
	sb.WriteByte('\n')
	for _, point := range analytics.Series {
		sb.WriteString(strings.Join([]string{
			point.Bucket,
			strconv.Itoa(point.Registrations),
			strconv.Itoa(point.Applications),
		}, ","))
		sb.WriteByte('\n')
	}
	return sb.String(), nil
}

// CSVFilename builds the download filename for an export.
func CSVFilename(kind string) string {
	return fmt.Sprintf("%s-export-%s.csv", kind, time.Now().Format("2006-01-02"))
}
