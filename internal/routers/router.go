package routers

import (
	"github.com/DmitriSedov/rest-api-design-tutorial/internal/app"
	"github.com/DmitriSedov/rest-api-design-tutorial/internal/middleware"
	"github.com/DmitriSedov/rest-api-design-tutorial/internal/routers/api_router"
	"github.com/DmitriSedov/rest-api-design-tutorial/pkg/hateoas"
	"github.com/DmitriSedov/rest-api-design-tutorial/pkg/limiter"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// MetricsNamespace prometheus 指标命名空间
const MetricsNamespace = "notes_api"

// NewRouter 创建对外 API 路由
// reg 为 nil 时不采集请求指标
func NewRouter(appContainer *app.App, reg prometheus.Registerer) *gin.Engine {

	// 获取配置
	cfg := appContainer.Config()
	lg := appContainer.Logger()

	methodLimiters := limiter.NewMethodLimiter().AddBuckets(cfg.GetLimiterRules()...)

	r := gin.New()
	r.HandleMethodNotAllowed = true

	r.Use(middleware.TraceMiddlewareWithConfig(cfg.Tracer.Enabled, cfg.Tracer.Header)) // Trace ID 中间件
	r.Use(middleware.AccessLogWithLogger(lg))
	r.Use(middleware.RecoveryWithLogger(lg))
	r.Use(middleware.AppInfoWithConfig(app.Name, appContainer.Version().Version))
	r.Use(middleware.Cors(cfg.Cors.AllowOrigins))
	if reg != nil {
		if m, err := middleware.NewMetrics(reg, MetricsNamespace); err != nil {
			lg.Warn("register http metrics failed", zap.Error(err))
		} else {
			r.Use(m.Handler())
		}
	}
	r.Use(middleware.LangWithTranslator(appContainer.Translator))
	r.Use(middleware.RateLimiter(methodLimiters))
	r.Use(middleware.ContextTimeout(cfg.GetContextTimeout()))

	// 创建 Handlers（注入 App Container）
	rootHandler := api_router.NewRootHandler(appContainer)
	systemHandler := api_router.NewSystemHandler(appContainer)
	userHandler := api_router.NewUserHandler(appContainer)
	noteHandler := api_router.NewNoteHandler(appContainer)

	// 无需认证
	r.GET("/", rootHandler.Entry)
	r.GET("/code-on-demand", rootHandler.CodeOnDemand)
	r.GET("/version", systemHandler.Version)
	r.GET("/health", systemHandler.Health)
	r.POST(hateoas.PathAuth, userHandler.Auth)

	auth := middleware.UserAuthTokenWithConfig(cfg.Security.AuthTokenKey)

	r.GET(hateoas.PathUsers+"/:id", auth, userHandler.Profile)

	notes := r.Group(hateoas.PathNotes, auth)
	{
		notes.GET("", noteHandler.List)
		notes.POST("", noteHandler.Create)

		notes.GET("/:id", noteHandler.RequireOwner, noteHandler.Get)
		notes.PUT("/:id", noteHandler.RequireOwner, noteHandler.Update)
		notes.PATCH("/:id", noteHandler.RequireOwner, noteHandler.EditText)
		notes.DELETE("/:id", noteHandler.RequireOwner, noteHandler.Delete)

		// 单个笔记不支持 POST
		notes.POST("/:id", middleware.MethodNotAllowed(api_router.NoteAllow))
	}

	r.NoRoute(middleware.NoFound())
	r.NoMethod(middleware.MethodNotAllowed(""))

	return r
}
