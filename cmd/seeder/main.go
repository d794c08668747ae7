package main

import (
	"Vega_Stream/internal/model"
	"Vega_Stream/pkg/config"
	"fmt"
	"log"
	"math/rand"

	"github.com/go-faker/faker/v4"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/errgroup"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// 测试数据填充器：建员工账号、普通用户、视频（大部分已发布）和随机点赞，
// 最后把likes表回填进videos.total_likes，保证计数器从第一天起就和真实行数一致
func main() {
	var (
		numUsers  int
		numVideos int
		numLikes  int
		drop      bool
	)

	cmd := &cobra.Command{
		Use:           "seeder",
		Short:         "填充Vega_Stream的测试数据",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return seed(numUsers, numVideos, numLikes, drop)
		},
	}
	cmd.Flags().IntVar(&numUsers, "users", 100, "创建的用户数量")
	cmd.Flags().IntVar(&numVideos, "videos", 500, "创建的视频数量")
	cmd.Flags().IntVar(&numLikes, "likes", 1000, "尝试创建的随机点赞数量")
	cmd.Flags().BoolVar(&drop, "drop", false, "填充前先删掉旧表（会丢掉所有数据！）")

	if err := cmd.Execute(); err != nil {
		log.Fatalf("填充失败: %v", err)
	}
}

func seed(numUsers, numVideos, numLikes int, drop bool) error {
	fmt.Println("开始填充测试数据...")

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	db, err := gorm.Open(mysql.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		return fmt.Errorf("无法连接到数据库: %w", err)
	}
	fmt.Println("数据库连接成功")

	if drop {
		fmt.Println("正在清理旧数据...")
		if err := db.Migrator().DropTable(&model.Like{}, &model.VideoFile{}, &model.Video{}, &model.User{}); err != nil {
			return err
		}
	}
	if err := db.AutoMigrate(&model.User{}, &model.Video{}, &model.VideoFile{}, &model.Like{}); err != nil {
		return err
	}

	// 所有账号共用同一个默认密码"password"，bcrypt很慢，只算一次
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	// 一个固定的员工账号，统计接口要用它登录
	admin := model.User{
		Username: "admin",
		Password: string(hashedPassword),
		IsStaff:  true,
		IsActive: true,
	}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&admin).Error; err != nil {
		return err
	}
	fmt.Println("员工账号admin就绪")

	fmt.Printf("正在创建%d个用户...\n", numUsers)
	var g errgroup.Group
	g.SetLimit(8) // 控制并发写库的goroutine数量
	for i := 0; i < numUsers; i++ {
		i := i
		g.Go(func() error {
			user := model.User{
				Username: fmt.Sprintf("user_%d_%s", i, faker.Username()),
				Password: string(hashedPassword),
				IsActive: true,
			}
			return db.Create(&user).Error
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	var userIDs []uint64
	if err := db.Model(&model.User{}).Where("is_staff = ?", false).Pluck("id", &userIDs).Error; err != nil {
		return err
	}

	fmt.Printf("正在创建%d个视频...\n", numVideos)
	var publishedIDs []uint64
	for i := 0; i < numVideos; i++ {
		video := model.Video{
			OwnerID: userIDs[rand.Intn(len(userIDs))],
			Name:    faker.Sentence(),
			// 大约八成视频已发布，剩下的留着验证可见性和统计的过滤
			IsPublished: rand.Intn(10) < 8,
		}
		if err := db.Create(&video).Error; err != nil {
			return err
		}
		if video.IsPublished {
			publishedIDs = append(publishedIDs, video.ID)
		}
	}

	fmt.Printf("正在创建%d个随机点赞...\n", numLikes)
	for i := 0; i < numLikes; i++ {
		like := model.Like{
			UserID: userIDs[rand.Intn(len(userIDs))],
			// 点赞目标只从已发布的视频里挑，未发布的会被校验钩子拒绝
			VideoID: publishedIDs[rand.Intn(len(publishedIDs))],
		}
		// 使用GORM的 OnConflict 来避免因为重复点赞而报错
		// 这会尝试插入，如果因为唯一键冲突失败，就什么都不做
		if err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "video_id"}},
			DoNothing: true,
		}).Create(&like).Error; err != nil {
			return err
		}
	}

	// 回填计数器：让total_likes和likes表的真实行数对齐
	fmt.Println("正在回填点赞计数器...")
	err = db.Exec(`UPDATE videos SET total_likes = (
		SELECT COUNT(*) FROM likes
		WHERE likes.video_id = videos.id AND likes.deleted_at IS NULL
	)`).Error
	if err != nil {
		return err
	}

	fmt.Println("测试数据填充完毕")
	return nil
}
