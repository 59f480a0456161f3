package user

import (
	"context"
	"errors"
	"io"
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
	"github.com/pbeenigg/star-vast-village/utils"
)

// fakeUserRepo 内存版用户仓库，记录每一次 UpdateFields 调用供断言。
type fakeUserRepo struct {
	users   map[string]*entities.User
	updates []map[string]interface{}
}

func newFakeUserRepo(users ...*entities.User) *fakeUserRepo {
	repo := &fakeUserRepo{users: make(map[string]*entities.User)}
	for _, u := range users {
		repo.users[u.ID] = u
	}
	return repo
}

func (f *fakeUserRepo) GetOrCreateByOpenid(context.Context, *entities.User) (*entities.User, bool, error) {
	panic("不应被调用")
}

func (f *fakeUserRepo) GetUserByID(_ context.Context, userID string) (*entities.User, error) {
	if u, ok := f.users[userID]; ok {
		return u, nil
	}
	return nil, commonerrors.ErrRepoNotFound
}

func (f *fakeUserRepo) UpdateFields(_ context.Context, userID string, fields map[string]interface{}) error {
	if _, ok := f.users[userID]; !ok {
		return commonerrors.ErrRepoNotFound
	}
	f.updates = append(f.updates, fields)
	applyUserFields(f.users[userID], fields)
	return nil
}

func (f *fakeUserRepo) UpdateLastLogin(context.Context, string, time.Time) error {
	panic("不应被调用")
}

func (f *fakeUserRepo) ListByAuthStatus(_ context.Context, status enums.AuthStatus, _, _ int) ([]*entities.User, int64, error) {
	var matched []*entities.User
	for _, u := range f.users {
		if u.AuthStatus == status {
			matched = append(matched, u)
		}
	}
	return matched, int64(len(matched)), nil
}

// applyUserFields 把字段名映射回实体，保持 fake 与真实仓库行为一致。
func applyUserFields(u *entities.User, fields map[string]interface{}) {
	for name, value := range fields {
		switch name {
		case "nickname":
			u.Nickname = value.(string)
		case "avatar":
			u.Avatar = value.(string)
		case "phone":
			u.Phone = value.(string)
		case "real_name_encrypted":
			u.RealNameEncrypted = value.(string)
		case "id_card_encrypted":
			u.IDCardEncrypted = value.(string)
		case "building":
			u.Building = value.(string)
		case "unit":
			u.Unit = value.(string)
		case "room":
			u.Room = value.(string)
		case "auth_status":
			u.AuthStatus = value.(enums.AuthStatus)
		}
	}
}

// fakeWechatClient 手机号授权码换取的桩实现。
type fakeWechatClient struct {
	phones map[string]string // code -> phone
}

func (f *fakeWechatClient) GetSession(context.Context, string) (string, string, error) {
	panic("不应被调用")
}

func (f *fakeWechatClient) GetPhoneNumber(_ context.Context, code string) (string, error) {
	if phone, ok := f.phones[code]; ok {
		return phone, nil
	}
	return "", errors.New("invalid code")
}

// fakeCOSClient 头像上传的桩实现。
type fakeCOSClient struct {
	uploadErr error
}

func (f *fakeCOSClient) UploadFile(context.Context, string, io.Reader, int64, string) (string, error) {
	panic("不应被调用")
}

func (f *fakeCOSClient) UploadUserAvatar(_ context.Context, userID, fileName string, _ io.Reader, _ int64) (string, error) {
	if f.uploadErr != nil {
		return "", f.uploadErr
	}
	return "https://cos.example.com/avatars/" + userID + "/" + fileName, nil
}

func (f *fakeCOSClient) UploadImage(context.Context, string, string, io.Reader, int64) (string, error) {
	panic("不应被调用")
}

func (f *fakeCOSClient) DeleteObject(context.Context, string) error {
	panic("不应被调用")
}

func newTestLogger(t *testing.T) *core.ZapLogger {
	t.Helper()
	logger, err := core.NewZapLogger(config.ZapConfig{Level: "error", Encoding: "console"})
	require.NoError(t, err)
	return logger
}

func newTestEncryptor(t *testing.T) *utils.Encryptor {
	t.Helper()
	enc, err := utils.NewEncryptor("user-service-test-secret")
	require.NoError(t, err)
	return enc
}

func newTestUserService(t *testing.T, repo *fakeUserRepo) (UserService, *utils.Encryptor) {
	t.Helper()
	enc := newTestEncryptor(t)
	wechat := &fakeWechatClient{phones: map[string]string{"phone-code": "13800001234"}}
	svc := NewUserService(repo, wechat, &fakeCOSClient{}, enc, newTestLogger(t))
	return svc, enc
}

func TestSubmitCertification_EncryptsAndResetsToPending(t *testing.T) {
	user := &entities.User{ID: "user-1", AuthStatus: enums.AuthStatusRejected}
	repo := newFakeUserRepo(user)
	svc, enc := newTestUserService(t, repo)

	result, err := svc.SubmitCertification(context.Background(), "user-1", dto.CertificationDTO{
		RealName: "张三",
		IDCard:   "110105194912310021",
		Building: "3栋",
		Unit:     "2单元",
		Room:     "501",
	})
	require.NoError(t, err)

	// 重新提交无条件回到待审核
	assert.Equal(t, enums.AuthStatusPending, result.AuthStatus)
	assert.Equal(t, enums.AuthStatusPending, user.AuthStatus)

	// 落库的是密文且可以还原
	assert.NotEqual(t, "张三", user.RealNameEncrypted)
	assert.NotEqual(t, "110105194912310021", user.IDCardEncrypted)
	realName, err := enc.Decrypt(user.RealNameEncrypted)
	require.NoError(t, err)
	assert.Equal(t, "张三", realName)
	idCard, err := enc.Decrypt(user.IDCardEncrypted)
	require.NoError(t, err)
	assert.Equal(t, "110105194912310021", idCard)
}

func TestSubmitCertification_InvalidIDCardNeverPersisted(t *testing.T) {
	repo := newFakeUserRepo(&entities.User{ID: "user-1"})
	svc, _ := newTestUserService(t, repo)

	_, err := svc.SubmitCertification(context.Background(), "user-1", dto.CertificationDTO{
		RealName: "张三",
		IDCard:   "123",
		Building: "3栋",
		Unit:     "2单元",
		Room:     "501",
	})
	assert.ErrorIs(t, err, commonerrors.ErrValidation)
	// 格式非法时不允许有任何写库动作
	assert.Empty(t, repo.updates)
}

func TestUpdateProfile_OnlyProvidedFields(t *testing.T) {
	user := &entities.User{ID: "user-1", Nickname: "旧昵称", Phone: "13800001234"}
	repo := newFakeUserRepo(user)
	svc, _ := newTestUserService(t, repo)

	nickname := "新昵称"
	profile, err := svc.UpdateProfile(context.Background(), "user-1", dto.UpdateProfileDTO{Nickname: &nickname})
	require.NoError(t, err)

	assert.Equal(t, "新昵称", profile.Nickname)
	require.Len(t, repo.updates, 1)
	assert.Equal(t, map[string]interface{}{"nickname": "新昵称"}, repo.updates[0])
	// 未提供的字段不动
	assert.Equal(t, "13800001234", user.Phone)
}

func TestGetProfile_PhoneMasked(t *testing.T) {
	repo := newFakeUserRepo(&entities.User{ID: "user-1", Phone: "13800001234"})
	svc, _ := newTestUserService(t, repo)

	profile, err := svc.GetProfile(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, "138****1234", profile.Phone)
}

func TestBindWechatPhone(t *testing.T) {
	user := &entities.User{ID: "user-1"}
	repo := newFakeUserRepo(user)
	svc, _ := newTestUserService(t, repo)

	result, err := svc.BindWechatPhone(context.Background(), "user-1", "phone-code")
	require.NoError(t, err)
	// 返回给前端的是脱敏号码，落库的是完整号码
	assert.Equal(t, "138****1234", result.Phone)
	assert.Equal(t, "13800001234", user.Phone)

	_, err = svc.BindWechatPhone(context.Background(), "user-1", "bad-code")
	assert.ErrorIs(t, err, commonerrors.ErrInvalidCredential)
}
