package portal

// UserInfo is the display-only identity shown in the header.
type UserInfo struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

var userInfos = map[Role]UserInfo{
	RoleAdmin:   {Name: "Admin User", Email: "admin@masomo.cd"},
	RoleTeacher: {Name: "Teacher User", Email: "teacher@masomo.cd"},
	RoleStudent: {Name: "Student User", Email: "student@masomo.cd"},
}

// UserInfoFor derives the display identity from a role.
func UserInfoFor(role Role) UserInfo {
	if info, ok := userInfos[role]; ok {
		return info
	}
	return UserInfo{Name: "Guest"}
}
