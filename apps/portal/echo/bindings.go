package echoapi

type (
	loginRequest struct {
		Username string `form:"username" validate:"required"`
		Password string `form:"password" validate:"required"`
	}

	trustedLoginRequest struct {
		Role string `form:"role" validate:"required,oneof=admin teacher student"`
	}

	navItem struct {
		Key    string `json:"key"`
		Title  string `json:"title"`
		Icon   string `json:"icon,omitempty"`
		Active bool   `json:"active"`
	}

	sessionResponse struct {
		Authenticated    bool      `json:"authenticated"`
		Role             string    `json:"role"`
		ActivePage       string    `json:"active_page"`
		Page             string    `json:"page"` // resolved page key
		Theme            string    `json:"theme"`
		SidebarCollapsed bool      `json:"sidebar_collapsed"`
		User             userInfo  `json:"user"`
		Nav              []navItem `json:"nav,omitempty"`
	}

	userInfo struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	}
)
