package views

import (
	g "maragu.dev/gomponents"
	"maragu.dev/gomponents/html"

	"github.com/trezcool/masomo-portal/core/portal"
)

var teacherPages = []portal.Page{
	{Key: portal.DashboardPage, Title: "Dashboard", Icon: "layout-dashboard", View: teacherDashboard},
	{Key: "classes", Title: "My Classes", Icon: "school", View: static("My Classes", "Classes you teach this term.",
		stat{"Classes", "5"}, stat{"Students", "163"})},
	{Key: "attendance", Title: "Attendance", Icon: "calendar-check", View: static("Attendance", "Take and review class attendance.")},
	{Key: "gradebook", Title: "Gradebook", Icon: "book", View: static("Gradebook", "Marks per class, subject and term.",
		stat{"Pending grades", "27"})},
	{Key: "assignments", Title: "Assignments", Icon: "clipboard", View: static("Assignments", "Homework handed out and handed in.",
		stat{"To review", "41"})},
	{Key: "timetable", Title: "Timetable", Icon: "calendar", View: static("Timetable", "Your weekly teaching schedule.")},
	{Key: "messages", Title: "Messages", Icon: "mail", View: messages},
	{Key: "profile", Title: "Profile", Icon: "user", View: profile},
}

func teacherDashboard(vc portal.ViewContext) g.Node {
	return html.Div(
		welcome(vc),
		card("Teacher Dashboard", "Today's classes and pending work.",
			stat{"Classes today", "3"}, stat{"Assignments to review", "41"}),
		quickLinks(vc, link{"gradebook", "Gradebook"}, link{"attendance", "Attendance"}, link{"timetable", "Timetable"}),
	)
}
