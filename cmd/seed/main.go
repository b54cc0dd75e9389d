package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"

	"yatube/config"
	"yatube/db"
	"yatube/services"

	"github.com/brianvoe/gofakeit/v7"
)

// Генератор демо-данных: пользователи, группы, посты, подписки, комментарии
func main() {
	var configPath string
	var userCount, groupCount, postCount, followCount int
	flag.StringVar(&configPath, "config", "config.yaml", "Path to the configuration file")
	flag.IntVar(&userCount, "users", 20, "Number of users to create")
	flag.IntVar(&groupCount, "groups", 5, "Number of groups to create")
	flag.IntVar(&postCount, "posts", 200, "Number of posts to create")
	flag.IntVar(&followCount, "follows", 60, "Number of follow edges to create")
	flag.Parse()

	if err := config.LoadConfig(configPath); err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := db.ConnectDB(); err != nil {
		log.Fatalf("Failed to connect to the database: %v", err)
	}

	ctx := context.Background()
	userService := services.NewUserService()
	groupService := services.NewGroupService()
	postService := services.NewPostService()
	followService := services.NewFollowService()
	commentService := services.NewCommentService()

	userIDs := make([]int64, 0, userCount)
	for i := 0; i < userCount; i++ {
		username := fmt.Sprintf("%s_%d", gofakeit.Username(), i)
		user, err := userService.Register(ctx, username, "password", gofakeit.FirstName(), gofakeit.LastName())
		if err != nil {
			log.Printf("skip user %s: %v", username, err)
			continue
		}
		userIDs = append(userIDs, user.ID)
	}
	log.Printf("Created %d users", len(userIDs))

	groupIDs := make([]int64, 0, groupCount)
	for i := 0; i < groupCount; i++ {
		slug := fmt.Sprintf("%s-%d", gofakeit.Word(), i)
		group, err := groupService.CreateGroup(ctx, gofakeit.BookTitle(), slug, gofakeit.Sentence(8))
		if err != nil {
			log.Printf("skip group %s: %v", slug, err)
			continue
		}
		groupIDs = append(groupIDs, group.ID)
	}
	log.Printf("Created %d groups", len(groupIDs))

	if len(userIDs) == 0 {
		log.Fatal("no users created, nothing to seed")
	}

	postIDs := make([]int64, 0, postCount)
	for i := 0; i < postCount; i++ {
		authorID := userIDs[rand.Intn(len(userIDs))]
		var groupID *int64
		if len(groupIDs) > 0 && rand.Intn(3) > 0 {
			gid := groupIDs[rand.Intn(len(groupIDs))]
			groupID = &gid
		}
		post, err := postService.CreatePost(ctx, authorID, gofakeit.Paragraph(1, 3, 12, " "), groupID)
		if err != nil {
			log.Printf("skip post: %v", err)
			continue
		}
		postIDs = append(postIDs, post.ID)
	}
	log.Printf("Created %d posts", len(postIDs))

	created := 0
	for i := 0; i < followCount; i++ {
		follower := userIDs[rand.Intn(len(userIDs))]
		author := userIDs[rand.Intn(len(userIDs))]
		if follower == author {
			continue
		}
		if err := followService.Follow(ctx, follower, author); err != nil {
			log.Printf("skip follow: %v", err)
			continue
		}
		created++
	}
	log.Printf("Created %d follow edges", created)

	for _, postID := range postIDs {
		for i := 0; i < rand.Intn(3); i++ {
			authorID := userIDs[rand.Intn(len(userIDs))]
			if _, err := commentService.AddComment(ctx, authorID, postID, gofakeit.Sentence(10)); err != nil {
				log.Printf("skip comment: %v", err)
			}
		}
	}
	log.Println("Seeding done")
}
