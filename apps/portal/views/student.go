package views

import (
	g "maragu.dev/gomponents"
	"maragu.dev/gomponents/html"

	"github.com/trezcool/masomo-portal/core/portal"
)

var studentPages = []portal.Page{
	{Key: portal.DashboardPage, Title: "Dashboard", Icon: "layout-dashboard", View: studentDashboard},
	{Key: "courses", Title: "Courses", Icon: "book", View: static("Courses", "Subjects you are enrolled in.",
		stat{"Subjects", "11"})},
	{Key: "assignments", Title: "Assignments", Icon: "clipboard", View: static("Assignments", "Homework due and submitted.",
		stat{"Due this week", "4"})},
	{Key: "grades", Title: "Grades", Icon: "award", View: static("Grades", "Your marks for the current term.",
		stat{"Average", "71%"})},
	{Key: "attendance", Title: "Attendance", Icon: "calendar-check", View: static("Attendance", "Your attendance record.",
		stat{"Present", "96%"})},
	{Key: "timetable", Title: "Timetable", Icon: "calendar", View: static("Timetable", "Your weekly class schedule.")},
	{Key: "fees", Title: "Fees", Icon: "wallet", View: static("Fees", "Your fee statement.",
		stat{"Balance", "0 CDF"})},
	{Key: "messages", Title: "Messages", Icon: "mail", View: messages},
	{Key: "profile", Title: "Profile", Icon: "user", View: profile},
}

func studentDashboard(vc portal.ViewContext) g.Node {
	return html.Div(
		welcome(vc),
		card("Student Dashboard", "Your week at a glance.",
			stat{"Assignments due", "4"}, stat{"Attendance", "96%"}),
		quickLinks(vc, link{"assignments", "Assignments"}, link{"grades", "Grades"}, link{"timetable", "Timetable"}),
	)
}
