package repair

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pbeenigg/star-vast-village/commonerrors"
	"github.com/pbeenigg/star-vast-village/config"
	"github.com/pbeenigg/star-vast-village/core"
	"github.com/pbeenigg/star-vast-village/models/dto"
	"github.com/pbeenigg/star-vast-village/models/entities"
	"github.com/pbeenigg/star-vast-village/models/enums"
	"github.com/pbeenigg/star-vast-village/repository/postgres"
)

// fakeRepairRepo 内存版工单仓库，可模拟工单号唯一索引冲突。
type fakeRepairRepo struct {
	repairs      map[uint]*entities.Repair
	nextID       uint
	failCreates  int // 前 N 次 Create 返回撞号错误
	createdCalls int
}

func newFakeRepairRepo() *fakeRepairRepo {
	return &fakeRepairRepo{repairs: make(map[uint]*entities.Repair), nextID: 1}
}

func (f *fakeRepairRepo) Create(_ context.Context, repair *entities.Repair) error {
	f.createdCalls++
	if f.failCreates > 0 {
		f.failCreates--
		return postgres.ErrDuplicateOrderNo
	}
	repair.ID = f.nextID
	f.nextID++
	f.repairs[repair.ID] = repair
	return nil
}

func (f *fakeRepairRepo) GetByID(_ context.Context, id uint) (*entities.Repair, error) {
	if r, ok := f.repairs[id]; ok {
		return r, nil
	}
	return nil, commonerrors.ErrRepoNotFound
}

func (f *fakeRepairRepo) UpdateFields(_ context.Context, id uint, fields map[string]interface{}) error {
	r, ok := f.repairs[id]
	if !ok {
		return commonerrors.ErrRepoNotFound
	}
	for name, value := range fields {
		switch name {
		case "status":
			r.Status = value.(enums.RepairStatus)
		case "handler_id":
			handlerID := value.(string)
			r.HandlerID = &handlerID
		case "priority":
			r.Priority = value.(int)
		case "scheduled_at":
			at := value.(time.Time)
			r.ScheduledAt = &at
		case "completed_at":
			at := value.(time.Time)
			r.CompletedAt = &at
		case "rating":
			rating := value.(int)
			r.Rating = &rating
		case "feedback":
			r.Feedback = value.(string)
		}
	}
	return nil
}

func (f *fakeRepairRepo) ListBySubmitter(_ context.Context, submitterID, status string, _, _ int) ([]*entities.Repair, int64, error) {
	var matched []*entities.Repair
	for _, r := range f.repairs {
		if r.SubmitterID == submitterID && (status == "" || string(r.Status) == status) {
			matched = append(matched, r)
		}
	}
	return matched, int64(len(matched)), nil
}

func (f *fakeRepairRepo) ListAll(_ context.Context, status string, _, _ int) ([]*entities.Repair, int64, error) {
	var matched []*entities.Repair
	for _, r := range f.repairs {
		if status == "" || string(r.Status) == status {
			matched = append(matched, r)
		}
	}
	return matched, int64(len(matched)), nil
}

func (f *fakeRepairRepo) ListByHandler(_ context.Context, handlerID, status string, _, _ int) ([]*entities.Repair, int64, error) {
	var matched []*entities.Repair
	for _, r := range f.repairs {
		if r.HandlerID != nil && *r.HandlerID == handlerID && (status == "" || string(r.Status) == status) {
			matched = append(matched, r)
		}
	}
	return matched, int64(len(matched)), nil
}

func newTestLogger(t *testing.T) *core.ZapLogger {
	t.Helper()
	logger, err := core.NewZapLogger(config.ZapConfig{Level: "error", Encoding: "console"})
	require.NoError(t, err)
	return logger
}

var (
	resident  = &entities.User{ID: "resident-1", Role: enums.RoleResident}
	volunteer = &entities.User{ID: "volunteer-1", Role: enums.RoleVolunteer}
	admin     = &entities.User{ID: "admin-1", Role: enums.RoleAdmin}
	stranger  = &entities.User{ID: "stranger-1", Role: enums.RoleResident}
)

func validCreateDTO() dto.CreateRepairDTO {
	return dto.CreateRepairDTO{
		Category:      "water",
		Title:         "厨房水管漏水",
		Building:      "3栋",
		Unit:          "2单元",
		Room:          "501",
		ContactPerson: "张三",
		ContactPhone:  "13800001234",
	}
}

func TestCreate_GeneratesOrderNo(t *testing.T) {
	repo := newFakeRepairRepo()
	svc := NewRepairService(repo, newTestLogger(t))

	result, err := svc.Create(context.Background(), resident, validCreateDTO())
	require.NoError(t, err)

	assert.Regexp(t, regexp.MustCompile(`^WX\d{12}$`), result.OrderNo)
	assert.Equal(t, enums.RepairPending, result.Status)
	assert.Equal(t, resident.ID, result.SubmitterID)
}

func TestCreate_RetriesOnceOnDuplicateOrderNo(t *testing.T) {
	repo := newFakeRepairRepo()
	repo.failCreates = 1
	svc := NewRepairService(repo, newTestLogger(t))

	result, err := svc.Create(context.Background(), resident, validCreateDTO())
	require.NoError(t, err)
	assert.Equal(t, 2, repo.createdCalls)
	assert.NotEmpty(t, result.OrderNo)
}

func TestCreate_SecondDuplicateFails(t *testing.T) {
	repo := newFakeRepairRepo()
	repo.failCreates = 2
	svc := NewRepairService(repo, newTestLogger(t))

	_, err := svc.Create(context.Background(), resident, validCreateDTO())
	assert.ErrorIs(t, err, commonerrors.ErrSystemError)
	assert.Equal(t, 2, repo.createdCalls, "撞号只重试一次")
}

func TestCreate_InvalidCategory(t *testing.T) {
	svc := NewRepairService(newFakeRepairRepo(), newTestLogger(t))

	data := validCreateDTO()
	data.Category = "teleport"
	_, err := svc.Create(context.Background(), resident, data)
	assert.ErrorIs(t, err, commonerrors.ErrValidation)
}

func TestGetByID_Visibility(t *testing.T) {
	repo := newFakeRepairRepo()
	svc := NewRepairService(repo, newTestLogger(t))

	created, err := svc.Create(context.Background(), resident, validCreateDTO())
	require.NoError(t, err)

	// 提交人看到完整电话
	mine, err := svc.GetByID(context.Background(), created.ID, resident)
	require.NoError(t, err)
	assert.Equal(t, "13800001234", mine.ContactPhone)

	// 管理员可见但电话脱敏
	adminView, err := svc.GetByID(context.Background(), created.ID, admin)
	require.NoError(t, err)
	assert.Equal(t, "138****1234", adminView.ContactPhone)

	// 无关住户不可见
	_, err = svc.GetByID(context.Background(), created.ID, stranger)
	assert.ErrorIs(t, err, commonerrors.ErrForbidden)
}

func TestAssign_PendingOnly(t *testing.T) {
	repo := newFakeRepairRepo()
	svc := NewRepairService(repo, newTestLogger(t))

	created, err := svc.Create(context.Background(), resident, validCreateDTO())
	require.NoError(t, err)

	priority := 1
	assigned, err := svc.Assign(context.Background(), created.ID, dto.AssignRepairDTO{
		HandlerID: volunteer.ID,
		Priority:  &priority,
	})
	require.NoError(t, err)
	assert.Equal(t, enums.RepairAssigned, assigned.Status)
	require.NotNil(t, assigned.HandlerID)
	assert.Equal(t, volunteer.ID, *assigned.HandlerID)

	// 已派单的工单不能再次派单
	_, err = svc.Assign(context.Background(), created.ID, dto.AssignRepairDTO{HandlerID: volunteer.ID})
	assert.ErrorIs(t, err, commonerrors.ErrValidation)
}

func TestUpdateStatus_StateMachineAndPermissions(t *testing.T) {
	repo := newFakeRepairRepo()
	svc := NewRepairService(repo, newTestLogger(t))

	created, err := svc.Create(context.Background(), resident, validCreateDTO())
	require.NoError(t, err)
	_, err = svc.Assign(context.Background(), created.ID, dto.AssignRepairDTO{HandlerID: volunteer.ID})
	require.NoError(t, err)

	// 无关住户不能推进
	_, err = svc.UpdateStatus(context.Background(), created.ID, stranger, dto.UpdateRepairStatusDTO{Status: "processing"})
	assert.ErrorIs(t, err, commonerrors.ErrForbidden)

	// 处理人推进到处理中
	processing, err := svc.UpdateStatus(context.Background(), created.ID, volunteer, dto.UpdateRepairStatusDTO{Status: "processing"})
	require.NoError(t, err)
	assert.Equal(t, enums.RepairProcessing, processing.Status)

	// 处理中不能直接取消
	_, err = svc.UpdateStatus(context.Background(), created.ID, resident, dto.UpdateRepairStatusDTO{Status: "cancelled"})
	assert.ErrorIs(t, err, commonerrors.ErrValidation)

	// 完成时记录完成时间
	completed, err := svc.UpdateStatus(context.Background(), created.ID, volunteer, dto.UpdateRepairStatusDTO{Status: "completed"})
	require.NoError(t, err)
	assert.Equal(t, enums.RepairCompleted, completed.Status)
	assert.NotNil(t, completed.CompletedAt)

	// 终态之后不能再迁移
	_, err = svc.UpdateStatus(context.Background(), created.ID, volunteer, dto.UpdateRepairStatusDTO{Status: "processing"})
	assert.ErrorIs(t, err, commonerrors.ErrValidation)
}

func TestUpdateStatus_CancelOnlySubmitterOrAdmin(t *testing.T) {
	repo := newFakeRepairRepo()
	svc := NewRepairService(repo, newTestLogger(t))

	created, err := svc.Create(context.Background(), resident, validCreateDTO())
	require.NoError(t, err)

	// 提交人可以取消待受理的工单
	cancelled, err := svc.UpdateStatus(context.Background(), created.ID, resident, dto.UpdateRepairStatusDTO{Status: "cancelled"})
	require.NoError(t, err)
	assert.Equal(t, enums.RepairCancelled, cancelled.Status)

	// 处理人不能替住户取消
	second, err := svc.Create(context.Background(), resident, validCreateDTO())
	require.NoError(t, err)
	_, err = svc.Assign(context.Background(), second.ID, dto.AssignRepairDTO{HandlerID: volunteer.ID})
	require.NoError(t, err)
	_, err = svc.UpdateStatus(context.Background(), second.ID, volunteer, dto.UpdateRepairStatusDTO{Status: "cancelled"})
	assert.ErrorIs(t, err, commonerrors.ErrForbidden)
}

func TestRate_OnlyCompletedAndOnce(t *testing.T) {
	repo := newFakeRepairRepo()
	svc := NewRepairService(repo, newTestLogger(t))

	created, err := svc.Create(context.Background(), resident, validCreateDTO())
	require.NoError(t, err)

	// 未完成不能评价
	_, err = svc.Rate(context.Background(), created.ID, resident.ID, dto.RateRepairDTO{Rating: 5})
	assert.ErrorIs(t, err, commonerrors.ErrValidation)

	_, err = svc.Assign(context.Background(), created.ID, dto.AssignRepairDTO{HandlerID: volunteer.ID})
	require.NoError(t, err)
	_, err = svc.UpdateStatus(context.Background(), created.ID, volunteer, dto.UpdateRepairStatusDTO{Status: "processing"})
	require.NoError(t, err)
	_, err = svc.UpdateStatus(context.Background(), created.ID, volunteer, dto.UpdateRepairStatusDTO{Status: "completed"})
	require.NoError(t, err)

	// 非提交人不能评价
	_, err = svc.Rate(context.Background(), created.ID, stranger.ID, dto.RateRepairDTO{Rating: 5})
	assert.ErrorIs(t, err, commonerrors.ErrForbidden)

	rated, err := svc.Rate(context.Background(), created.ID, resident.ID, dto.RateRepairDTO{Rating: 5, Feedback: "处理很及时"})
	require.NoError(t, err)
	require.NotNil(t, rated.Rating)
	assert.Equal(t, 5, *rated.Rating)

	// 每单只能评价一次
	_, err = svc.Rate(context.Background(), created.ID, resident.ID, dto.RateRepairDTO{Rating: 1})
	assert.ErrorIs(t, err, commonerrors.ErrValidation)
}
