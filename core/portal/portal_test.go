package portal

import (
	g "maragu.dev/gomponents"
	"maragu.dev/gomponents/html"
)

func stubView(name string) ViewFactory {
	return func(ViewContext) g.Node { return html.P(g.Text(name)) }
}

func stubTables() map[Role][]Page {
	return map[Role][]Page{
		RoleAdmin: {
			{Key: DashboardPage, Title: "Dashboard", View: stubView("admin dashboard")},
			{Key: "students", Title: "Students", View: stubView("admin students")},
			{Key: "fees", Title: "Fees", View: stubView("admin fees")},
		},
		RoleTeacher: {
			{Key: DashboardPage, Title: "Dashboard", View: stubView("teacher dashboard")},
			{Key: "gradebook", Title: "Gradebook", View: stubView("teacher gradebook")},
			{Key: "attendance", Title: "Attendance", View: stubView("teacher attendance")},
		},
		RoleStudent: {
			{Key: DashboardPage, Title: "Dashboard", View: stubView("student dashboard")},
			{Key: "grades", Title: "Grades", View: stubView("student grades")},
			{Key: "attendance", Title: "Attendance", View: stubView("student attendance")},
		},
	}
}
