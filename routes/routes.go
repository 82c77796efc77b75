package routes

import (
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/websocket/v2"

	controller "leadhub/controllers"
	"leadhub/middleware"
	"leadhub/store"
)

func SetupAuthRoutes(app *fiber.App, st *store.Store) {
	authLogger := log.New(os.Stdout, "AUTH: ", log.Ldate|log.Ltime|log.Lshortfile)
	authController := controller.NewAuthController(st, authLogger)

	// Auth routes group with logging middleware
	auth := app.Group("/auth", logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	// Public auth endpoints (no authentication required)
	auth.Post("/login", authController.Login)
	auth.Post("/refresh", authController.RefreshToken)

	// Protected auth endpoints (require valid JWT)
	protectedAuth := auth.Group("", middleware.Protected(st))
	protectedAuth.Post("/logout", authController.Logout)
	protectedAuth.Post("/change-password", authController.ChangePassword)
	protectedAuth.Get("/me", authController.GetCurrentUser)

	authLogger.Println("Authentication routes initialized successfully")
}

func SetupAPIRoutes(app *fiber.App, st *store.Store) {
	// Initialize controllers with their respective loggers
	leadController := controller.NewLeadController(st, log.New(os.Stdout, "LEAD: ", log.LstdFlags))
	taskController := controller.NewTaskController(st, log.New(os.Stdout, "TASK: ", log.LstdFlags))
	userController := controller.NewUserController(st, log.New(os.Stdout, "USER: ", log.LstdFlags))
	lookupController := controller.NewLookupController(st, log.New(os.Stdout, "LOOKUP: ", log.LstdFlags))
	groupController := controller.NewGroupController(st, log.New(os.Stdout, "GROUP: ", log.LstdFlags))
	templateController := controller.NewTemplateController(st, log.New(os.Stdout, "TEMPLATE: ", log.LstdFlags))
	sequenceController := controller.NewSequenceController(st, log.New(os.Stdout, "SEQUENCE: ", log.LstdFlags))
	contentController := controller.NewContentController(st, log.New(os.Stdout, "CONTENT: ", log.LstdFlags))
	settingController := controller.NewSettingController(st, log.New(os.Stdout, "SETTING: ", log.LstdFlags))
	activityController := controller.NewActivityController(st, log.New(os.Stdout, "ACTIVITY: ", log.LstdFlags))
	dashboardController := controller.NewDashboardController(st, log.New(os.Stdout, "DASHBOARD: ", log.LstdFlags))

	// API group with versioning, protection and write rate limiting
	api := app.Group("/api/v1", middleware.Protected(st), middleware.WriteRateLimiter(),
		logger.New(logger.Config{
			Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
		}))

	// Dashboard routes
	dashboard := api.Group("/dashboard")
	dashboard.Get("/stats", dashboardController.GetDashboardStats)

	// Lead routes
	lead := api.Group("/leads")
	lead.Post("/", leadController.CreateLead)
	lead.Get("/", leadController.GetLeads)
	lead.Get("/export", leadController.ExportLeads)
	lead.Get("/:id", leadController.GetLead)
	lead.Put("/:id", leadController.UpdateLead)
	lead.Delete("/:id", leadController.DeleteLead)
	lead.Put("/:leadID/group", groupController.AssignLead)

	// Task routes
	task := api.Group("/tasks")
	task.Post("/", taskController.CreateTask)
	task.Get("/", taskController.GetTasks)
	task.Get("/:id", taskController.GetTask)
	task.Put("/:id", taskController.UpdateTask)
	task.Delete("/:id", taskController.DeleteTask)
	task.Post("/:id/advance", taskController.AdvanceTask)

	// User administration routes
	user := api.Group("/users")
	user.Post("/", userController.CreateUser)
	user.Get("/", userController.GetUsers)
	user.Get("/:id", userController.GetUser)
	user.Put("/:id", userController.UpdateUser)
	user.Delete("/:id", userController.DeleteUser)

	// Lookup tables
	api.Get("/lookups/:table", lookupController.GetLookup)

	// Lead group routes
	group := api.Group("/groups")
	group.Post("/", groupController.CreateGroup)
	group.Get("/", groupController.GetGroups)
	group.Get("/:id", groupController.GetGroup)
	group.Put("/:id", groupController.UpdateGroup)
	group.Delete("/:id", groupController.DeactivateGroup)
	group.Post("/:id/members", groupController.AddMember)
	group.Delete("/:id/members/:userID", groupController.RemoveMember)

	// Contact template routes
	template := api.Group("/templates")
	template.Post("/", templateController.CreateTemplate)
	template.Get("/", templateController.GetTemplates)
	template.Get("/:id", templateController.GetTemplate)
	template.Put("/:id", templateController.UpdateTemplate)
	template.Delete("/:id", templateController.DeleteTemplate)
	template.Get("/:id/preview", templateController.PreviewTemplate)
	template.Post("/:id/send-test", templateController.SendTestTemplate)

	// Contact sequence routes
	sequence := api.Group("/sequences")
	sequence.Post("/", sequenceController.CreateSequence)
	sequence.Get("/", sequenceController.GetSequences)
	sequence.Get("/:id", sequenceController.GetSequence)
	sequence.Put("/:id", sequenceController.UpdateSequence)
	sequence.Put("/:id/steps", sequenceController.SetSequenceSteps)
	sequence.Delete("/:id", sequenceController.DeleteSequence)

	// Broker link routes
	broker := api.Group("/broker-links")
	broker.Post("/", contentController.CreateBrokerLink)
	broker.Get("/", contentController.GetBrokerLinks)
	broker.Put("/:id", contentController.UpdateBrokerLink)
	broker.Delete("/:id", contentController.DeleteBrokerLink)

	// Script routes
	script := api.Group("/scripts")
	script.Post("/", contentController.CreateScript)
	script.Get("/", contentController.GetScripts)
	script.Get("/:id", contentController.GetScript)
	script.Put("/:id", contentController.UpdateScript)
	script.Delete("/:id", contentController.DeleteScript)

	// Settings and backup
	setting := api.Group("/settings")
	setting.Get("/", settingController.GetSettings)
	setting.Post("/", settingController.SetSetting)
	setting.Get("/:key", settingController.GetSetting)
	api.Post("/backup", settingController.TriggerBackup)

	// Activity feed
	api.Get("/activity", activityController.GetActivity)

	// WebSocket route for the live activity feed. The upgrade request
	// carries the same JWT as any API call, so it goes through the
	// protected group like the rest.
	api.Get("/activity/live", websocket.New(func(c *websocket.Conn) {
		controller.HandleActivityWS(c)
	}))

	log.Println("API routes initialized successfully")
}

func SetupRoutes(app *fiber.App, st *store.Store) {
	// Setup health check endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Setup auth routes
	SetupAuthRoutes(app, st)

	// Setup API routes
	SetupAPIRoutes(app, st)

	// Setup 404 handler
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error":   "Not Found",
			"message": "The requested resource was not found",
		})
	})
}
