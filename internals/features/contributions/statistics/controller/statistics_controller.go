package controller

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/sync/errgroup"

	contribModel "clubfund_backend/internals/features/contributions/contributions/model"
	"clubfund_backend/internals/features/contributions/statistics/service"
	memberModel "clubfund_backend/internals/features/users/members/model"
	helper "clubfund_backend/internals/helpers"
	"clubfund_backend/internals/helpers/dbtime"
	"clubfund_backend/internals/helpers/weeks"
)

type MemberSource interface {
	ListAll(ctx context.Context) ([]memberModel.MemberModel, error)
}

type ContributionSource interface {
	ListAll(ctx context.Context) ([]contribModel.ContributionModel, error)
}

type StatisticsController struct {
	Members       MemberSource
	Contributions ContributionSource
}

func NewStatisticsController(members MemberSource, contributions ContributionSource) *StatisticsController {
	return &StatisticsController{Members: members, Contributions: contributions}
}

// load member & kontribusi paralel
func (ctrl *StatisticsController) load(ctx context.Context) ([]memberModel.MemberModel, []contribModel.ContributionModel, error) {
	var (
		members []memberModel.MemberModel
		rows    []contribModel.ContributionModel
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		members, err = ctrl.Members.ListAll(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		rows, err = ctrl.Contributions.ListAll(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return members, rows, nil
}

// ?week=&year= kosong → minggu berjalan
func referenceWeek(c *fiber.Ctx) (weeks.Ref, bool) {
	ref := weeks.Of(dbtime.NowInClub(c))
	if n := c.QueryInt("week"); n > 0 {
		ref.Number = n
		if y := c.QueryInt("year"); y > 0 {
			ref.Year = y
		}
	}
	return ref, ref.Valid()
}

// 🟢 GET /api/a/statistics?week=&year=
func (ctrl *StatisticsController) Statistics(c *fiber.Ctx) error {
	ref, ok := referenceWeek(c)
	if !ok {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, "Tuần không hợp lệ")
	}
	members, rows, err := ctrl.load(c.UserContext())
	if err != nil {
		log.Printf("[ERROR] statistics load: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Không tải được thống kê")
	}
	return helper.JsonOK(c, "Thống kê", service.ComputeStatistics(rows, members, ref))
}

// 🟢 GET /api/a/matrix?weeks=8&week=&year=
func (ctrl *StatisticsController) Matrix(c *fiber.Ctx) error {
	ref, ok := referenceWeek(c)
	if !ok {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, "Tuần không hợp lệ")
	}
	size := service.ClampWindow(c.QueryInt("weeks", service.DefaultMatrixWeeks))

	members, rows, err := ctrl.load(c.UserContext())
	if err != nil {
		log.Printf("[ERROR] matrix load: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Không tải được bảng đóng quỹ")
	}
	stats := service.ComputeStatistics(rows, members, ref)
	return helper.JsonOK(c, "Bảng đóng quỹ", fiber.Map{
		"matrix":      service.BuildMatrix(members, rows, size, ref),
		"departments": stats.Departments,
	})
}
