package controller

import (
	"context"
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/sync/errgroup"

	contribModel "clubfund_backend/internals/features/contributions/contributions/model"
	"clubfund_backend/internals/features/contributions/reports/service"
	memberModel "clubfund_backend/internals/features/users/members/model"
	helper "clubfund_backend/internals/helpers"
	"clubfund_backend/internals/helpers/dbtime"
)

type MemberSource interface {
	ListAll(ctx context.Context) ([]memberModel.MemberModel, error)
}

type ContributionSource interface {
	ListAll(ctx context.Context) ([]contribModel.ContributionModel, error)
}

type ReportController struct {
	Members       MemberSource
	Contributions ContributionSource
}

func NewReportController(members MemberSource, contributions ContributionSource) *ReportController {
	return &ReportController{Members: members, Contributions: contributions}
}

func (ctrl *ReportController) build(c *fiber.Ctx) (service.Report, error) {
	var (
		members []memberModel.MemberModel
		rows    []contribModel.ContributionModel
	)
	g, gctx := errgroup.WithContext(c.UserContext())
	g.Go(func() (err error) {
		members, err = ctrl.Members.ListAll(gctx)
		return err
	})
	g.Go(func() (err error) {
		rows, err = ctrl.Contributions.ListAll(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return service.Report{}, err
	}

	// ?year= opsional
	if year := c.QueryInt("year"); year > 0 {
		filtered := rows[:0]
		for _, r := range rows {
			if r.Year == year {
				filtered = append(filtered, r)
			}
		}
		rows = filtered
	}
	return service.BuildReport(members, rows, dbtime.GetClubLocation(c)), nil
}

// 🟢 GET /api/a/reports?year=
func (ctrl *ReportController) Report(c *fiber.Ctx) error {
	r, err := ctrl.build(c)
	if err != nil {
		log.Printf("[ERROR] report: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Không tạo được báo cáo")
	}
	return helper.JsonOK(c, "Báo cáo", r)
}

// 🟢 GET /api/a/reports/export?year= (xlsx)
func (ctrl *ReportController) Export(c *fiber.Ctx) error {
	r, err := ctrl.build(c)
	if err != nil {
		log.Printf("[ERROR] report export: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Không tạo được báo cáo")
	}
	data, err := service.WriteWorkbook(r)
	if err != nil {
		log.Printf("[ERROR] report workbook: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Không tạo được tệp Excel")
	}

	filename := fmt.Sprintf("bao-cao-quy-%s.xlsx", dbtime.NowInClub(c).Format("20060102"))
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(data)
}
