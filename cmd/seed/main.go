package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/sysu-ecnc-dev/campaign-coordinator/backend/internal/config"
	"github.com/sysu-ecnc-dev/campaign-coordinator/backend/internal/planner"
	"github.com/sysu-ecnc-dev/campaign-coordinator/backend/internal/repository"
	"github.com/sysu-ecnc-dev/campaign-coordinator/backend/internal/seed"
	"github.com/sysu-ecnc-dev/campaign-coordinator/backend/internal/utils"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	var op int
	var n int
	var campaignID int64
	var phaseNumber int

	flag.IntVar(&op, "op", 0, "要执行的操作 (1: 插入随机志愿者, 2: 插入随机运动, 3: 为运动生成阶段行动, 4: 插入演示数据)")
	flag.IntVar(&n, "n", 5, "要插入的记录数量")
	flag.Int64Var(&campaignID, "campaign-id", 0, "要生成阶段行动的运动 ID")
	flag.IntVar(&phaseNumber, "phase", 1, "要生成行动的阶段编号")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	// 读取配置文件
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("无法读取配置文件", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 创建数据库连接池
	dbpool, err := sql.Open("pgx", cfg.Database.DSN)
	if err != nil {
		logger.Error("无法创建数据库连接池", "error", err)
		return
	}
	defer dbpool.Close()

	dbpool.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	dbpool.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	dbpool.SetConnMaxIdleTime(time.Duration(cfg.Database.MaxIdleTime) * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Database.ConnectTimeout)*time.Second)
	defer cancel()

	// sql.Open 只是创建数据库连接池对象，并不会立即连接到数据库，因此需要显式地 ping 一下
	if err := dbpool.PingContext(ctx); err != nil {
		logger.Error("无法连接到数据库", "error", err)
		return
	}

	// 创建 repository
	repo := repository.NewRepository(cfg, dbpool)

	// 执行操作
	switch op {
	case 0:
		slog.Error("未指定操作")
	case 1:
		if n <= 0 {
			slog.Error("请输入合法的志愿者数量")
		} else {
			cnt := n
			for i := 0; i < n; i++ {
				participant, err := utils.GenerateRandomParticipant(cfg.Seed.Participant.Password, cfg.Email.UserDomain)
				if err != nil {
					slog.Error("无法生成随机志愿者", slog.String("error", err.Error()))
					continue
				}

				if err := repo.CreateParticipant(participant); err != nil {
					slog.Error("无法插入志愿者", slog.String("error", err.Error()))
					continue
				}

				cnt--
			}

			slog.Info("插入志愿者成功", slog.Int("count", n-cnt))
		}
	case 2:
		if n <= 0 {
			slog.Error("请输入合法的运动数量")
		} else {
			types := planner.ListCampaignTypes()

			cnt := n
			for i := 0; i < n; i++ {
				// 随机选一种运动类型
				summary := types[rand.Intn(len(types))]

				name := "测试运动 " + utils.GenerateRandomID(4, 4)
				campaign, err := planner.BuildCampaign(name, summary.Type, "测试目标", "测试目的", nil, nil)
				if err != nil {
					slog.Error("无法构建运动", slog.String("error", err.Error()))
					continue
				}

				if err := repo.CreateCampaign(campaign); err != nil {
					slog.Error("无法插入运动", slog.String("error", err.Error()))
					continue
				}

				cnt--
			}

			slog.Info("插入运动成功", slog.Int("count", n-cnt))
		}
	case 3:
		if campaignID <= 0 {
			slog.Error("请输入合法的运动 ID")
			return
		}

		// 获取对应的运动
		campaign, err := repo.GetCampaignByID(campaignID)
		if err != nil {
			switch {
			case errors.Is(err, sql.ErrNoRows):
				slog.Error("指定的运动不存在", slog.Int64("campaign_id", campaignID))
			default:
				slog.Error("无法获取运动", slog.String("error", err.Error()))
			}
			return
		}

		// 获取运动的目标
		targets, err := repo.GetTargetsByCampaignID(campaign.ID)
		if err != nil {
			slog.Error("无法获取运动目标", slog.String("error", err.Error()))
			return
		}

		actions, err := planner.GeneratePhaseActions(campaign, int32(phaseNumber), targets)
		if err != nil {
			slog.Error("无法生成阶段行动", slog.String("error", err.Error()))
			return
		}

		for _, action := range actions {
			action.CampaignID = campaign.ID
		}

		if err := repo.CreateActions(actions); err != nil {
			slog.Error("无法插入行动", slog.String("error", err.Error()))
			return
		}

		slog.Info("插入阶段行动成功", slog.Int("count", len(actions)))
	case 4:
		seed.SeedDemoData(repo)
	default:
		slog.Error("指定的操作非法")
	}
}
