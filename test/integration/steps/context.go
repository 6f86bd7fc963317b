// Package steps provides step definitions for the BDD integration suite.
package steps

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/quanta/backend/internal/application/usecase/auth"
	"github.com/quanta/backend/internal/application/usecase/budget"
	"github.com/quanta/backend/internal/application/usecase/category"
	"github.com/quanta/backend/internal/application/usecase/coach"
	"github.com/quanta/backend/internal/application/usecase/dashboard"
	"github.com/quanta/backend/internal/application/usecase/goal"
	"github.com/quanta/backend/internal/application/usecase/recurring"
	"github.com/quanta/backend/internal/application/usecase/savingsplan"
	"github.com/quanta/backend/internal/application/usecase/transaction"
	"github.com/quanta/backend/internal/infra/server/router"
	"github.com/quanta/backend/internal/integration/adapters"
	"github.com/quanta/backend/internal/integration/cache"
	"github.com/quanta/backend/internal/integration/entrypoint/controller"
	"github.com/quanta/backend/internal/integration/entrypoint/middleware"
	"github.com/quanta/backend/internal/integration/persistence"
	"github.com/quanta/backend/internal/integration/persistence/model"
	"github.com/quanta/backend/test/integration/mock"
)

const testJWTSecret = "test-jwt-secret-key-for-testing-purposes"

type testContext struct {
	uri      string
	headers  map[string]string
	client   *http.Client
	response *response
	db       *mock.Db
	timeMock *mock.Time

	accessToken  string
	refreshToken string

	currentUserID     uuid.UUID
	currentCategoryID uuid.UUID
	currentGoalID     uuid.UUID
	currentBudgetID   uuid.UUID
	currentTemplateID uuid.UUID
	lastTransactionID uuid.UUID
	lastItemID        uuid.UUID
}

type response struct {
	status int
	body   any
}

var serverInit sync.Once
var portInit sync.Once
var testDB *mock.Db
var testTime = mock.NewTime()
var testServerPort int

func initializePort() {
	portInit.Do(func() {
		testServerPort = findAvailablePort()
		_ = os.Setenv("ENV", "test")
	})
}

func findAvailablePort() int {
	listener, err := net.Listen("tcp", ":0")
	if err != nil {
		panic(err)
	}
	defer listener.Close()
	return listener.Addr().(*net.TCPAddr).Port
}

// InitializeTestSuite sets up suite-wide resources.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(func() {
		gin.SetMode(gin.TestMode)
	})
}

// InitializeScenario wires the test context and registers every step.
func InitializeScenario(ctx *godog.ScenarioContext) {
	initializePort()

	test := &testContext{
		uri:      fmt.Sprintf("http://localhost:%d", testServerPort),
		client:   &http.Client{Timeout: 10 * time.Second},
		timeMock: testTime,
		db: mock.NewDb(map[string]any{
			"users":                     &model.UserModel{},
			"refresh_tokens":            &model.RefreshTokenModel{},
			"categories":                &model.CategoryModel{},
			"transactions":              &model.TransactionModel{},
			"recurring_templates":       &model.RecurringTemplateModel{},
			"monthly_expense_documents": &model.MonthlyDocumentModel{},
			"monthly_expense_items":     &model.MonthlyItemModel{},
			"goals":                     &model.GoalModel{},
			"goal_contributions":        &model.ContributionModel{},
			"budgets":                   &model.BudgetModel{},
			"reminder_queue":            &model.ReminderJobModel{},
		}),
	}

	testDB = test.db

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		return ctx, test.before()
	})

	// Background steps
	ctx.Given(`^the API server is running$`, test.theAPIServerIsRunning)
	ctx.Given(`^the current time is "([^"]*)"$`, test.theCurrentTimeIs)

	// Fixture steps
	ctx.Given(`^a user exists with email "([^"]*)"$`, test.aUserExistsWithEmail)
	ctx.Given(`^a user exists with email "([^"]*)" and password "([^"]*)"$`, test.aUserExistsWithEmailAndPassword)
	// Registered keyword-agnostic so scenarios can switch users mid-flow.
	ctx.Step(`^I am logged in as "([^"]*)"$`, test.iAmLoggedInAs)
	ctx.Given(`^a category exists with name "([^"]*)" and type "([^"]*)"$`, test.aCategoryExistsWithNameAndType)
	ctx.Given(`^the header is empty$`, test.theHeaderIsEmpty)
	ctx.Given(`^the header contains the key "([^"]*)" with "([^"]*)"$`, test.theHeaderContainsTheKeyWith)

	// Request steps
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)"$`, test.iSendARequestTo)
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, test.iSendARequestToWithBody)

	// Response assertion steps
	ctx.Then(`^the response status should be (\d+)$`, test.theResponseStatusShouldBe)
	ctx.Then(`^the response should be JSON$`, test.theResponseShouldBeJSON)
	ctx.Then(`^the response should contain "([^"]*)"$`, test.theResponseShouldContain)
	ctx.Then(`^the response field "([^"]*)" should be "([^"]*)"$`, test.theResponseFieldShouldBe)
	ctx.Then(`^the response field "([^"]*)" should exist$`, test.theResponseFieldShouldExist)

	// Database assertion steps
	ctx.Then(`^the db should contain (\d+) objects in the "([^"]*)" table$`, test.theDbShouldContainObjectsInTheTable)
	ctx.Then(`^the db should contain (\d+) objects in "([^"]*)" with the values$`, test.theDbShouldContainObjectsInWithTheValues)
}

func (t *testContext) before() error {
	t.headers = make(map[string]string)
	t.accessToken = ""
	t.refreshToken = ""
	t.currentUserID = uuid.Nil
	t.currentCategoryID = uuid.Nil
	t.currentGoalID = uuid.Nil
	t.currentBudgetID = uuid.Nil
	t.currentTemplateID = uuid.Nil
	t.lastTransactionID = uuid.Nil
	t.lastItemID = uuid.Nil
	t.response = nil

	if err := t.db.Reset(); err != nil {
		return err
	}
	if err := persistence.SeedSystemCategories(context.Background(), t.db.DbConn); err != nil {
		return err
	}
	return mock.ClearRedis(mock.NewRedis())
}

func (t *testContext) theAPIServerIsRunning() error {
	t.startServer()
	return nil
}

func (t *testContext) theCurrentTimeIs(value string) error {
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return fmt.Errorf("invalid time %q: %w", value, err)
	}
	t.timeMock.SetCurrentTime(parsed.UTC())
	return nil
}

// startServer boots the full API once, wired against the test database,
// the embedded redis and the adjustable clock.
func (t *testContext) startServer() {
	serverInit.Do(func() {
		go func() {
			gin.SetMode(gin.TestMode)

			conn := testDB.DbConn

			userRepo := persistence.NewUserRepository(conn)
			tokenRepo := persistence.NewTokenRepository(conn)
			categoryRepo := persistence.NewCategoryRepository(conn)
			transactionRepo := persistence.NewTransactionRepository(conn)
			templateRepo := persistence.NewRecurringTemplateRepository(conn)
			documentRepo := persistence.NewMonthlyDocumentRepository(conn)
			goalRepo := persistence.NewGoalRepository(conn)
			budgetRepo := persistence.NewBudgetRepository(conn)

			clock := testTime
			passwordService := adapters.NewPasswordService()
			tokenService := adapters.NewTokenService(testJWTSecret, tokenRepo)
			coachService := adapters.NewGeminiCoachService("")
			analysisCache := cache.NewAnalysisCache(mock.NewRedis())

			registerUseCase := auth.NewRegisterUserUseCase(userRepo, passwordService, tokenService)
			loginUseCase := auth.NewLoginUserUseCase(userRepo, passwordService, tokenService)
			refreshTokenUseCase := auth.NewRefreshTokenUseCase(tokenService)
			logoutUseCase := auth.NewLogoutUserUseCase(tokenService)

			listCategoriesUseCase := category.NewListCategoriesUseCase(categoryRepo)
			createCategoryUseCase := category.NewCreateCategoryUseCase(categoryRepo)
			updateCategoryUseCase := category.NewUpdateCategoryUseCase(categoryRepo, clock)
			deleteCategoryUseCase := category.NewDeleteCategoryUseCase(categoryRepo)

			listTransactionsUseCase := transaction.NewListTransactionsUseCase(transactionRepo)
			createTransactionUseCase := transaction.NewCreateTransactionUseCase(transactionRepo, categoryRepo)
			updateTransactionUseCase := transaction.NewUpdateTransactionUseCase(transactionRepo, categoryRepo, clock)
			deleteTransactionUseCase := transaction.NewDeleteTransactionUseCase(transactionRepo)

			commitRecurringUseCase := recurring.NewCommitRecurringUseCase(transactionRepo, templateRepo, documentRepo, clock)
			getMonthlyDocumentUseCase := recurring.NewGetMonthlyDocumentUseCase(templateRepo, documentRepo, clock)
			settleItemUseCase := recurring.NewSettleItemUseCase(transactionRepo, documentRepo, clock)
			pendingPaymentsUseCase := recurring.NewPendingPaymentsUseCase(transactionRepo, clock)
			listTemplatesUseCase := recurring.NewListTemplatesUseCase(templateRepo)
			updateTemplateUseCase := recurring.NewUpdateTemplateUseCase(templateRepo, documentRepo, clock)
			deactivateTemplateUseCase := recurring.NewDeactivateTemplateUseCase(templateRepo, documentRepo, clock)

			listGoalsUseCase := goal.NewListGoalsUseCase(goalRepo)
			createGoalUseCase := goal.NewCreateGoalUseCase(goalRepo)
			getGoalUseCase := goal.NewGetGoalUseCase(goalRepo)
			updateGoalUseCase := goal.NewUpdateGoalUseCase(goalRepo, clock)
			deleteGoalUseCase := goal.NewDeleteGoalUseCase(goalRepo)
			addContributionUseCase := goal.NewAddContributionUseCase(goalRepo, transactionRepo, categoryRepo, clock)
			removeContributionUseCase := goal.NewRemoveContributionUseCase(goalRepo, clock)
			getPlanUseCase := savingsplan.NewGetPlanUseCase(goalRepo, transactionRepo, clock)

			listBudgetsUseCase := budget.NewListBudgetsUseCase(budgetRepo, categoryRepo, clock)
			createBudgetUseCase := budget.NewCreateBudgetUseCase(budgetRepo, categoryRepo)
			updateBudgetUseCase := budget.NewUpdateBudgetUseCase(budgetRepo, clock)
			deleteBudgetUseCase := budget.NewDeleteBudgetUseCase(budgetRepo)

			getAnalysisUseCase := coach.NewGetAnalysisUseCase(transactionRepo, goalRepo, categoryRepo, userRepo, coachService, analysisCache, clock)
			getTipsUseCase := coach.NewGetTipsUseCase(transactionRepo, goalRepo, categoryRepo, userRepo, coachService, analysisCache, clock)
			getSummaryUseCase := dashboard.NewGetSummaryUseCase(transactionRepo, goalRepo, clock)

			healthController := controller.NewHealthController(
				func() bool { return testDB != nil && testDB.DbConn != nil },
				func() bool { return mock.NewRedis().Ping(context.Background()).Err() == nil },
			)
			authController := controller.NewAuthController(registerUseCase, loginUseCase, refreshTokenUseCase, logoutUseCase)
			categoryController := controller.NewCategoryController(listCategoriesUseCase, createCategoryUseCase, updateCategoryUseCase, deleteCategoryUseCase)
			transactionController := controller.NewTransactionController(listTransactionsUseCase, createTransactionUseCase, updateTransactionUseCase, deleteTransactionUseCase, commitRecurringUseCase)
			recurringController := controller.NewRecurringController(getMonthlyDocumentUseCase, settleItemUseCase, pendingPaymentsUseCase, listTemplatesUseCase, updateTemplateUseCase, deactivateTemplateUseCase)
			goalController := controller.NewGoalController(listGoalsUseCase, createGoalUseCase, getGoalUseCase, updateGoalUseCase, deleteGoalUseCase, addContributionUseCase, removeContributionUseCase, getPlanUseCase)
			budgetController := controller.NewBudgetController(listBudgetsUseCase, createBudgetUseCase, updateBudgetUseCase, deleteBudgetUseCase)
			coachController := controller.NewCoachController(getAnalysisUseCase, getTipsUseCase)
			dashboardController := controller.NewDashboardController(getSummaryUseCase)

			loginRateLimiter := middleware.NewRateLimiter()
			authMiddleware := middleware.NewAuthMiddleware(tokenService)

			r := router.NewRouter(
				healthController,
				authController,
				categoryController,
				transactionController,
				recurringController,
				goalController,
				budgetController,
				coachController,
				dashboardController,
				loginRateLimiter,
				authMiddleware,
			)
			engine := r.Setup("test")

			server := &http.Server{
				Addr:    ":" + strconv.Itoa(testServerPort),
				Handler: engine,
			}
			_ = server.ListenAndServe()
		}()
	})

	for i := 0; i < 50; i++ {
		resp, err := http.Get(t.uri + "/health")
		if err == nil && resp.StatusCode == http.StatusOK {
			resp.Body.Close()
			return
		}
		time.Sleep(100 * time.Millisecond)
	}
}
