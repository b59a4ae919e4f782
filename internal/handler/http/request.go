package http

import (
	"net/http"

	"github.com/cmlabs-hris/fichajes-dashboard/internal/domain/attendance"
	"github.com/cmlabs-hris/fichajes-dashboard/internal/pkg/validator"
	"github.com/go-chi/jwtauth/v5"
)

// getUserIDFromContext extracts user_id from JWT context
func getUserIDFromContext(r *http.Request) string {
	_, claims, _ := jwtauth.FromContext(r.Context())
	if userID, ok := claims["user_id"].(string); ok {
		return userID
	}
	return ""
}

// parseDashboardRequest reads the filter query shared by the dashboard, map,
// stream and export endpoints.
func parseDashboardRequest(r *http.Request) (attendance.DashboardRequest, error) {
	q := r.URL.Query()

	days, ok := validator.Atoi(q.Get("days"), 0)
	if !ok {
		return attendance.DashboardRequest{}, validator.ValidationErrors{{
			Field:   "days",
			Message: "days must be a number",
		}}
	}

	req := attendance.DashboardRequest{
		Days:     days,
		Search:   q.Get("q"),
		Kind:     q.Get("kind"),
		Date:     q.Get("date"),
		Mode:     q.Get("mode"),
		Timezone: q.Get("tz"),
	}
	if err := req.Validate(); err != nil {
		return attendance.DashboardRequest{}, err
	}
	return req, nil
}

func parseChartRequest(r *http.Request) (attendance.ChartRequest, error) {
	q := r.URL.Query()
	req := attendance.ChartRequest{
		StartDate: q.Get("start"),
		EndDate:   q.Get("end"),
		Timezone:  q.Get("tz"),
	}
	if err := req.Validate(); err != nil {
		return attendance.ChartRequest{}, err
	}
	return req, nil
}
