package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pbeenigg/star-vast-village/commonerrors"
	"github.com/pbeenigg/star-vast-village/models/dto"
	"github.com/pbeenigg/star-vast-village/models/entities"
	"github.com/pbeenigg/star-vast-village/models/enums"
	"github.com/pbeenigg/star-vast-village/utils"
)

// newPendingUser 构造一个带加密认证信息的待审核用户。
func newPendingUser(t *testing.T, enc *utils.Encryptor, id string) *entities.User {
	t.Helper()
	realNameEnc, err := enc.Encrypt("张三")
	require.NoError(t, err)
	idCardEnc, err := enc.Encrypt("110105194912310021")
	require.NoError(t, err)
	return &entities.User{
		ID:                id,
		Nickname:          "住户" + id,
		AuthStatus:        enums.AuthStatusPending,
		RealNameEncrypted: realNameEnc,
		IDCardEncrypted:   idCardEnc,
		Building:          "3栋",
		Unit:              "2单元",
		Room:              "501",
		Phone:             "13800001234",
	}
}

func newTestCertService(t *testing.T, repo *fakeUserRepo) (CertificationAdminService, *utils.Encryptor) {
	t.Helper()
	enc := newTestEncryptor(t)
	return NewCertificationAdminService(repo, enc, newTestLogger(t)), enc
}

func TestListPending_MasksSensitiveFields(t *testing.T) {
	enc := newTestEncryptor(t)
	repo := newFakeUserRepo(newPendingUser(t, enc, "user-1"))
	svc := NewCertificationAdminService(repo, enc, newTestLogger(t))

	page, err := svc.ListPending(context.Background(), 1, 10)
	require.NoError(t, err)
	require.Len(t, page.List, 1)

	item := page.List[0]
	assert.Equal(t, "user-1", item.UserID)
	assert.Equal(t, "张*", item.RealNameMask)
	assert.Equal(t, "110105********0021", item.IDCardMask)
	assert.Equal(t, "138****1234", item.Phone)
}

func TestListPending_UndecryptableRowDoesNotAbortList(t *testing.T) {
	enc := newTestEncryptor(t)
	good := newPendingUser(t, enc, "user-1")
	broken := newPendingUser(t, enc, "user-2")
	broken.IDCardEncrypted = "not-an-envelope"
	repo := newFakeUserRepo(good, broken)
	svc := NewCertificationAdminService(repo, enc, newTestLogger(t))

	page, err := svc.ListPending(context.Background(), 1, 10)
	require.NoError(t, err)
	require.Len(t, page.List, 2)

	// 坏记录脱敏字段置空，但列表本身正常返回
	for _, item := range page.List {
		if item.UserID == "user-2" {
			assert.Empty(t, item.RealNameMask)
			assert.Empty(t, item.IDCardMask)
		}
	}
}

func TestGetDetail_MaskedByDefault(t *testing.T) {
	enc := newTestEncryptor(t)
	repo := newFakeUserRepo(newPendingUser(t, enc, "user-1"))
	svc := NewCertificationAdminService(repo, enc, newTestLogger(t))

	detail, err := svc.GetDetail(context.Background(), "admin-1", "user-1", false)
	require.NoError(t, err)
	assert.Equal(t, "张*", detail.RealName)
	assert.Equal(t, "110105********0021", detail.IDCard)
}

func TestGetDetail_RevealReturnsPlaintext(t *testing.T) {
	enc := newTestEncryptor(t)
	repo := newFakeUserRepo(newPendingUser(t, enc, "user-1"))
	svc := NewCertificationAdminService(repo, enc, newTestLogger(t))

	detail, err := svc.GetDetail(context.Background(), "admin-1", "user-1", true)
	require.NoError(t, err)
	assert.Equal(t, "张三", detail.RealName)
	assert.Equal(t, "110105194912310021", detail.IDCard)
}

func TestGetDetail_DecryptFailurePropagated(t *testing.T) {
	enc := newTestEncryptor(t)
	user := newPendingUser(t, enc, "user-1")
	user.RealNameEncrypted = "broken"
	repo := newFakeUserRepo(user)
	svc := NewCertificationAdminService(repo, enc, newTestLogger(t))

	_, err := svc.GetDetail(context.Background(), "admin-1", "user-1", false)
	assert.ErrorIs(t, err, commonerrors.ErrMalformedCiphertext)
}

func TestReview_ApproveAndReject(t *testing.T) {
	enc := newTestEncryptor(t)
	approveMe := newPendingUser(t, enc, "user-1")
	rejectMe := newPendingUser(t, enc, "user-2")
	repo := newFakeUserRepo(approveMe, rejectMe)
	svc := NewCertificationAdminService(repo, enc, newTestLogger(t))

	result, err := svc.Review(context.Background(), "admin-1", "user-1", dto.ReviewCertificationDTO{Action: "approve"})
	require.NoError(t, err)
	assert.Equal(t, enums.AuthStatusVerified, result.AuthStatus)
	assert.Equal(t, enums.AuthStatusVerified, approveMe.AuthStatus)

	result, err = svc.Review(context.Background(), "admin-1", "user-2", dto.ReviewCertificationDTO{Action: "reject", Reason: "信息不符"})
	require.NoError(t, err)
	assert.Equal(t, enums.AuthStatusRejected, result.AuthStatus)
	assert.Equal(t, enums.AuthStatusRejected, rejectMe.AuthStatus)
}

func TestReview_OnlyPendingReviewable(t *testing.T) {
	enc := newTestEncryptor(t)
	user := newPendingUser(t, enc, "user-1")
	user.AuthStatus = enums.AuthStatusVerified
	repo := newFakeUserRepo(user)
	svc := NewCertificationAdminService(repo, enc, newTestLogger(t))

	_, err := svc.Review(context.Background(), "admin-1", "user-1", dto.ReviewCertificationDTO{Action: "approve"})
	assert.ErrorIs(t, err, commonerrors.ErrValidation)
}

func TestReview_UnknownUser(t *testing.T) {
	repo := newFakeUserRepo()
	svc, _ := newTestCertService(t, repo)

	_, err := svc.Review(context.Background(), "admin-1", "ghost", dto.ReviewCertificationDTO{Action: "approve"})
	assert.ErrorIs(t, err, commonerrors.ErrRepoNotFound)
}
