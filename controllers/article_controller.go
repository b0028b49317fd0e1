package controllers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/JerryLinyx/NewsSummarizer/models"
	"github.com/JerryLinyx/NewsSummarizer/services"
	"github.com/gin-gonic/gin"
)

// ArticleService is the pipeline behind the article routes.
type ArticleService interface {
	Ingest(ctx context.Context, url string) (*models.Article, bool, error)
	GetByID(ctx context.Context, id uint) (*models.Article, error)
	GetAll(ctx context.Context) ([]models.Article, error)
	GetByCategory(ctx context.Context, category string) ([]models.Article, error)
	Delete(ctx context.Context, id uint) error
	Categories(ctx context.Context) ([]models.CategoryCount, error)
}

var _ ArticleService = (*services.ArticleService)(nil)

type ArticleController struct {
	svc ArticleService
}

func NewArticleController(svc ArticleService) *ArticleController {
	return &ArticleController{svc: svc}
}

type createArticleRequest struct {
	URL string `json:"url"`
}

func (a *ArticleController) CreateArticle(c *gin.Context) {
	var req createArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": services.KindInvalidInput.String(), "message": "request body must be JSON with a url field"})
		return
	}

	article, created, err := a.svc.Ingest(c.Request.Context(), req.URL)
	if err != nil {
		respondError(c, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, article)
}

func (a *ArticleController) GetArticles(c *gin.Context) {
	articles, err := a.svc.GetAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, articles)
}

func (a *ArticleController) GetArticleByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	article, err := a.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, article)
}

func (a *ArticleController) GetArticlesByCategory(c *gin.Context) {
	articles, err := a.svc.GetByCategory(c.Request.Context(), c.Param("category"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, articles)
}

func (a *ArticleController) DeleteArticle(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := a.svc.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Article deleted successfully"})
}

func (a *ArticleController) GetCategories(c *gin.Context) {
	counts, err := a.svc.Categories(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, counts)
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 0)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": services.KindInvalidInput.String(), "message": "article ID must be a positive integer"})
		return 0, false
	}
	return uint(id), true
}
