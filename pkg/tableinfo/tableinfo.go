package tableinfo

const (
	PostsTableName = "posts"

	PostIDColumn       = "id"
	PostTextColumn     = "text"
	PostAuthorIDColumn = "author_id"
	PostGroupIDColumn  = "group_id"
	PostImageColumn    = "image"
	PostPubDateColumn  = "pub_date"
)

const (
	GroupsTableName = "groups"

	GroupIDColumn          = "id"
	GroupTitleColumn       = "title"
	GroupSlugColumn        = "slug"
	GroupDescriptionColumn = "description"
)

const (
	CommentsTableName = "comments"

	CommentIDColumn       = "id"
	CommentPostIDColumn   = "post_id"
	CommentAuthorIDColumn = "author_id"
	CommentTextColumn     = "text"
	CommentCreatedColumn  = "created"
)

const (
	FollowsTableName = "follows"

	FollowUserIDColumn   = "user_id"
	FollowAuthorIDColumn = "author_id"
)

const (
	UsersTableName = "users"

	UserIDColumn       = "id"
	UserUsernameColumn = "username"
)
