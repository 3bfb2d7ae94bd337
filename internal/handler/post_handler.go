package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/d-lino-kee/skill-swap-platform/internal/database"
	"github.com/d-lino-kee/skill-swap-platform/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	defaultBoardPageSize = 10
	maxBoardPageSize     = 100
)

// region --- DTOs ---

// PostInput defines the structure for creating a discussion-board post.
type PostInput struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content" binding:"required"`
	Tag     string `json:"tag" binding:"required"`
}

// PostResponse defines the structure returned for a stored post.
type PostResponse struct {
	ID        uint      `json:"id"`
	UserID    *uint     `json:"user_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Tag       string    `json:"tag"`
	Author    string    `json:"author"`
	CreatedAt time.Time `json:"created_at"`
}

// CommentInput defines the structure for creating a comment. Replies point at
// their parent comment through parent_id.
type CommentInput struct {
	PostID   uint   `json:"post_id" binding:"required"`
	Content  string `json:"content" binding:"required"`
	ParentID *uint  `json:"parent_id"`
}

// CommentResponse defines the structure returned for a stored comment.
type CommentResponse struct {
	ID        uint      `json:"id"`
	PostID    uint      `json:"post_id"`
	ParentID  *uint     `json:"parent_id"`
	Name      string    `json:"name"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

func newPostResponse(p models.Post) PostResponse {
	return PostResponse{
		ID:        p.ID,
		UserID:    p.UserID,
		Title:     p.Title,
		Content:   p.Content,
		Tag:       p.Tag,
		Author:    p.Author,
		CreatedAt: p.CreatedAt,
	}
}

func newCommentResponse(cm models.Comment) CommentResponse {
	return CommentResponse{
		ID:        cm.ID,
		PostID:    cm.PostID,
		ParentID:  cm.ParentID,
		Name:      cm.Name,
		Content:   cm.Content,
		CreatedAt: cm.CreatedAt,
	}
}

// BoardPageMeta describes a board page's position within the full post list.
type BoardPageMeta struct {
	TotalPosts  int64 `json:"total_posts"`
	TotalPages  int   `json:"total_pages"`
	CurrentPage int   `json:"current_page"`
	PageSize    int   `json:"page_size"`
}

// BoardPage is one page of board posts, newest first.
type BoardPage struct {
	Posts []PostResponse `json:"posts"`
	Meta  BoardPageMeta  `json:"meta"`
}

// endregion

// listBoardPage counts the filtered posts, fetches one page, and maps the rows
// to their response shape.
func listBoardPage(query *gorm.DB, page, limit int) (BoardPage, error) {
	var totalPosts int64
	if err := query.Count(&totalPosts).Error; err != nil {
		return BoardPage{}, err
	}

	var rows []models.Post
	if err := query.Offset((page - 1) * limit).Limit(limit).Find(&rows).Error; err != nil {
		return BoardPage{}, err
	}

	posts := make([]PostResponse, 0, len(rows))
	for _, p := range rows {
		posts = append(posts, newPostResponse(p))
	}

	return BoardPage{
		Posts: posts,
		Meta: BoardPageMeta{
			TotalPosts:  totalPosts,
			TotalPages:  (int(totalPosts) + limit - 1) / limit,
			CurrentPage: page,
			PageSize:    limit,
		},
	}, nil
}

// GetPosts godoc
// @Summary      List discussion-board posts
// @Description  Gets a paginated list of posts, newest first, optionally filtered by author.
// @Tags         posts
// @Produce      json
// @Param        user_id query int false "Filter by author user ID"
// @Param        page    query int false "Page number" default(1)
// @Param        limit   query int false "Items per page" default(10)
// @Success      200  {object}  BoardPage
// @Failure      500  {object}  ErrorResponse
// @Router       /posts [get]
func GetPosts(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit < 1 {
		limit = defaultBoardPageSize
	}
	if limit > maxBoardPageSize {
		limit = maxBoardPageSize
	}

	query := database.DB.Model(&models.Post{}).Order("created_at DESC")
	if userID := c.Query("user_id"); userID != "" {
		query = query.Where("user_id = ?", userID)
	}

	boardPage, err := listBoardPage(query, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching posts"})
		return
	}

	c.JSON(http.StatusOK, boardPage)
}

// GetPostByID godoc
// @Summary      Get a post by ID
// @Tags         posts
// @Produce      json
// @Param        id path int true "Post ID"
// @Success      200  {object}  PostResponse
// @Failure      404  {object}  ErrorResponse "Post not found"
// @Router       /posts/{id} [get]
func GetPostByID(c *gin.Context) {
	postID := c.Param("id")

	var post models.Post
	if err := database.DB.First(&post, postID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	c.JSON(http.StatusOK, newPostResponse(post))
}

// CreatePost godoc
// @Summary      Create a post
// @Description  Creates a discussion-board post authored by the authenticated user.
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body PostInput true "Post Info"
// @Success      201  {object}  map[string]interface{} "{"message": "Post added successfully", "post_id": 1}"
// @Failure      400  {object}  ErrorResponse "All fields are required"
// @Failure      401  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /posts [post]
func CreatePost(c *gin.Context) {
	viewerID, _ := c.Get("userID")

	var input PostInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "All fields are required"})
		return
	}

	userID := viewerID.(uint)
	post := models.Post{
		UserID:  &userID,
		Title:   input.Title,
		Content: input.Content,
		Tag:     input.Tag,
		Author:  authorName(userID),
	}
	if err := database.DB.Create(&post).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add post"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Post added successfully", "post_id": post.ID})
}

// GetComments godoc
// @Summary      List comments for a post
// @Tags         posts
// @Produce      json
// @Param        id path int true "Post ID"
// @Success      200  {array}   CommentResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /posts/{id}/comments [get]
func GetComments(c *gin.Context) {
	postID := c.Param("id")

	var comments []models.Comment
	if err := database.DB.Where("post_id = ?", postID).Find(&comments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch comments"})
		return
	}

	responses := make([]CommentResponse, 0, len(comments))
	for _, cm := range comments {
		responses = append(responses, newCommentResponse(cm))
	}
	c.JSON(http.StatusOK, responses)
}

// CreateComment godoc
// @Summary      Add a comment
// @Description  Adds a comment to a post. A reply carries the parent comment's id in parent_id; the parent must belong to the same post.
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body CommentInput true "Comment Info"
// @Success      201  {object}  map[string]interface{} "{"message": "Comment added successfully", "comment_id": 1}"
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Post not found"
// @Failure      500  {object}  ErrorResponse
// @Router       /comments [post]
func CreateComment(c *gin.Context) {
	viewerID, _ := c.Get("userID")

	var input CommentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "All fields are required"})
		return
	}

	var post models.Post
	if err := database.DB.First(&post, input.PostID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	if input.ParentID != nil {
		var parent models.Comment
		if err := database.DB.First(&parent, *input.ParentID).Error; err != nil || parent.PostID != input.PostID {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Parent comment does not belong to this post"})
			return
		}
	}

	comment := models.Comment{
		PostID:   input.PostID,
		ParentID: input.ParentID,
		Name:     authorName(viewerID.(uint)),
		Content:  input.Content,
	}
	if err := database.DB.Create(&comment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add comment"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Comment added successfully", "comment_id": comment.ID})
}

// authorName resolves a display name for board content; users who have not
// filled in a profile post as Anonymous.
func authorName(userID uint) string {
	var user models.User
	if err := database.DB.First(&user, userID).Error; err != nil || user.Name == "" {
		return "Anonymous"
	}
	return user.Name
}
