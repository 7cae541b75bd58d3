package views

import (
	g "maragu.dev/gomponents"
	"maragu.dev/gomponents/html"

	"github.com/trezcool/masomo-portal/core/portal"
)

var adminPages = []portal.Page{
	{Key: portal.DashboardPage, Title: "Dashboard", Icon: "layout-dashboard", View: adminDashboard},
	{Key: "students", Title: "Students", Icon: "users", View: static("Students", "Enrolment records for every class.",
		stat{"Enrolled", "1,248"}, stat{"New this term", "86"})},
	{Key: "teachers", Title: "Teachers", Icon: "user-check", View: static("Teachers", "Staff directory and assignments.",
		stat{"Teaching staff", "64"}, stat{"On leave", "3"})},
	{Key: "classes", Title: "Classes", Icon: "school", View: static("Classes", "Class groups, rooms and class teachers.",
		stat{"Classes", "42"})},
	{Key: "attendance", Title: "Attendance", Icon: "calendar-check", View: static("Attendance", "School-wide attendance overview.",
		stat{"Present today", "94%"})},
	{Key: "examinations", Title: "Examinations", Icon: "clipboard", View: static("Examinations", "Exam sessions and results publication.",
		stat{"Upcoming sessions", "2"})},
	{Key: "fees", Title: "Fees", Icon: "wallet", View: static("Fees", "Fee schedules and collection status.",
		stat{"Collected", "78%"}, stat{"Outstanding accounts", "213"})},
	{Key: "reports", Title: "Reports", Icon: "chart-bar", View: static("Reports", "Term reports and statistics.")},
	{Key: "messages", Title: "Messages", Icon: "mail", View: messages},
	{Key: "settings", Title: "Settings", Icon: "settings", View: static("Settings", "School profile, terms and grading scales.")},
	{Key: "profile", Title: "Profile", Icon: "user", View: profile},
}

func adminDashboard(vc portal.ViewContext) g.Node {
	return html.Div(
		welcome(vc),
		card("Admin Dashboard", "School overview for the current term.",
			stat{"Students", "1,248"}, stat{"Teachers", "64"}, stat{"Fees collected", "78%"}),
		quickLinks(vc, link{"students", "Students"}, link{"fees", "Fees"}, link{"reports", "Reports"}),
	)
}
