package integration

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	_ "github.com/lib/pq"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	handler "github.com/vidora/api/internal/adapters/handler/http"
	repo "github.com/vidora/api/internal/adapters/repository/postgres"
	"github.com/vidora/api/internal/adapters/storage"
	"github.com/vidora/api/internal/config"
	"github.com/vidora/api/internal/core/domain"
	"github.com/vidora/api/internal/core/ports"
	"github.com/vidora/api/internal/core/services"
)

func setupPostgresContainer(ctx context.Context) (testcontainers.Container, string, error) {
	dbName := "testdb"
	user := "user"
	password := "password"

	pgContainer, err := postgres.Run(ctx, "postgres:15-alpine",
		postgres.WithDatabase(dbName),
		postgres.WithUsername(user),
		postgres.WithPassword(password),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Second),
		),
	)
	if err != nil {
		return nil, "", fmt.Errorf("failed to start postgres container: %w", err)
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return nil, "", err
	}

	return pgContainer, connStr, nil
}

func applyMigrations(db *sql.DB) error {
	dirPath := "../../internal/adapters/repository/postgres/migrations"

	entries, err := os.ReadDir(dirPath)
	if err != nil {
		return fmt.Errorf("failed to read migrations directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		if !strings.HasSuffix(entry.Name(), "up.sql") {
			continue
		}

		fullPath := filepath.Join(dirPath, entry.Name())
		content, err := os.ReadFile(fullPath)
		if err != nil {
			return fmt.Errorf("failed to read migration file %s: %w", entry.Name(), err)
		}

		_, err = db.Exec(string(content))
		if err != nil {
			return fmt.Errorf("failed to execute migration %s: %w", entry.Name(), err)
		}
	}

	return nil
}

type TestApp struct {
	DB          *sql.DB
	Server      *httptest.Server
	Client      *http.Client
	StatsSvc    ports.StatsService
	DBContainer testcontainers.Container
}

func setupTestApp(t *testing.T) *TestApp {
	t.Helper()
	ctx := context.Background()

	dbContainer, dbURL, err := setupPostgresContainer(ctx)
	require.NoError(t, err)

	db, err := sql.Open("postgres", dbURL)
	require.NoError(t, err)

	err = applyMigrations(db)
	require.NoError(t, err)

	authCfg := config.Auth{
		AccessTokenSecret:  []byte("test-access-secret"),
		RefreshTokenSecret: []byte("test-refresh-secret"),
		AccessTokenTTL:     15 * time.Minute,
		RefreshTokenTTL:    7 * 24 * time.Hour,
	}
	cookieCfg := config.Cookies{SameSite: http.SameSiteLaxMode}

	mediaRoot := t.TempDir()
	mediaStore, err := storage.NewDiskStorage(mediaRoot)
	require.NoError(t, err)

	userRepo := repo.NewUserRepository(db)
	videoRepo := repo.NewVideoRepository(db)
	subRepo := repo.NewSubscriptionRepository(db)
	historyRepo := repo.NewWatchHistoryRepository(db)
	statsRepo := repo.NewChannelStatsRepository(db)

	tokenSvc := services.NewTokenService(authCfg)
	userSvc := services.NewUserService(userRepo)
	authSvc := services.NewAuthService(userRepo, tokenSvc)
	videoSvc := services.NewVideoService(videoRepo, userRepo, historyRepo, mediaStore)
	subSvc := services.NewSubscriptionService(subRepo, userRepo)
	historySvc := services.NewHistoryService(historyRepo)
	statsSvc := services.NewStatsService(userRepo, statsRepo)

	router := handler.NewHandler(
		handler.NewAuthHandler(authSvc, userSvc, authCfg, cookieCfg),
		handler.NewUserHandler(userSvc, historySvc),
		handler.NewVideoHandler(videoSvc),
		handler.NewSubscriptionHandler(subSvc, statsSvc),
		tokenSvc,
		mediaRoot,
	)

	server := httptest.NewServer(router)

	return &TestApp{
		DB:          db,
		Server:      server,
		Client:      server.Client(),
		StatsSvc:    statsSvc,
		DBContainer: dbContainer,
	}
}

func (app *TestApp) Teardown(t *testing.T) {
	app.Server.Close()
	app.DB.Close()
	if err := app.DBContainer.Terminate(context.Background()); err != nil {
		t.Logf("failed to terminate container: %v", err)
	}
}

type session struct {
	User    *domain.User
	Cookies []*http.Cookie
}

func (app *TestApp) registerAndLogin(t *testing.T, username string) *session {
	t.Helper()

	payload := map[string]string{
		"username":  username,
		"email":     username + "@example.com",
		"full_name": "Test " + username,
		"password":  "Secret123!",
	}
	body, _ := json.Marshal(payload)

	resp, err := app.Client.Post(app.Server.URL+"/api/v1/users/register", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	loginBody, _ := json.Marshal(map[string]string{
		"username": username,
		"password": "Secret123!",
	})
	resp, err = app.Client.Post(app.Server.URL+"/api/v1/users/login", "application/json", bytes.NewReader(loginBody))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var logged struct {
		User *domain.User `json:"user"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&logged))
	resp.Body.Close()

	return &session{User: logged.User, Cookies: resp.Cookies()}
}

func (app *TestApp) doRequest(t *testing.T, method, path string, body io.Reader, sess *session) *http.Response {
	t.Helper()

	req, err := http.NewRequest(method, app.Server.URL+path, body)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if sess != nil {
		for _, cookie := range sess.Cookies {
			req.AddCookie(cookie)
		}
	}

	resp, err := app.Client.Do(req)
	require.NoError(t, err)
	return resp
}

// publishVideo uploads a small fake video through the multipart endpoint and
// returns the created record.
func (app *TestApp) publishVideo(t *testing.T, sess *session, title string) *domain.Video {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	require.NoError(t, writer.WriteField("title", title))
	require.NoError(t, writer.WriteField("description", "Uploaded during a test run"))
	require.NoError(t, writer.WriteField("duration_seconds", "12.5"))

	videoPart, err := writer.CreateFormFile("videoFile", "clip.mp4")
	require.NoError(t, err)
	_, err = videoPart.Write([]byte("not really an mp4"))
	require.NoError(t, err)

	thumbPart, err := writer.CreateFormFile("thumbnail", "thumb.png")
	require.NoError(t, err)
	_, err = thumbPart.Write([]byte("not really a png"))
	require.NoError(t, err)

	require.NoError(t, writer.Close())

	req, err := http.NewRequest("POST", app.Server.URL+"/api/v1/videos/", &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	for _, cookie := range sess.Cookies {
		req.AddCookie(cookie)
	}

	resp, err := app.Client.Do(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var video domain.Video
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&video))
	resp.Body.Close()
	return &video
}
