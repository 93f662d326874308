package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aquadesk/pkg/logger"
	"aquadesk/pkg/metrics"
	"aquadesk/pkg/models"
)

func TestNormalizePhone(t *testing.T) {
	cases := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "+994501234567", want: "+994501234567"},
		{in: "994501234567", want: "+994501234567"},
		{in: "0501234567", want: "+994501234567"},
		{in: "501234567", want: "+994501234567"},
		{in: "+994 50 123 45 67", want: "+994501234567"},
		{in: "(050) 123-45-67", want: "+994501234567"},
		{in: "12345", wantErr: true},
		{in: "+99450123456789", wantErr: true},
		{in: "050123456a", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := NormalizePhone(tc.in)
			if tc.wantErr {
				assert.ErrorIs(t, err, models.ErrValidation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func newCustomerService(client *fakeClient) CustomerService {
	return NewCustomerService(client, metrics.New(), logger.New("test", "error"))
}

func TestCreateCustomerValidation(t *testing.T) {
	svc := newCustomerService(&fakeClient{})

	err := svc.Create(context.Background(), CustomerInput{Phone: "0501234567", PricePerBidon: 350})
	assert.ErrorIs(t, err, models.ErrValidation)

	err = svc.Create(context.Background(), CustomerInput{FirstName: "Ali", Phone: "0501234567"})
	assert.ErrorIs(t, err, models.ErrValidation)

	err = svc.Create(context.Background(), CustomerInput{FirstName: "Ali", Phone: "not-a-phone", PricePerBidon: 350})
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestCreateCustomerRejectsDuplicatePhone(t *testing.T) {
	svc := newCustomerService(&fakeClient{customers: testCustomers()})

	// Same subscriber number as srv-1, different formatting.
	err := svc.Create(context.Background(), CustomerInput{
		FirstName:     "Vali",
		Phone:         "050 111 11 11",
		PricePerBidon: 300,
	})
	assert.ErrorIs(t, err, models.ErrDuplicatePhone)
}

func TestUpdateCustomerAllowsOwnPhone(t *testing.T) {
	svc := newCustomerService(&fakeClient{customers: testCustomers()})

	err := svc.Update(context.Background(), "srv-1", CustomerInput{
		FirstName:     "Ali",
		Phone:         "+994501111111",
		PricePerBidon: 375,
	})
	assert.NoError(t, err)
}

func TestUpdateCustomerRejectsOthersPhone(t *testing.T) {
	svc := newCustomerService(&fakeClient{customers: testCustomers()})

	err := svc.Update(context.Background(), "srv-1", CustomerInput{
		FirstName:     "Ali",
		Phone:         "+994502222222",
		PricePerBidon: 375,
	})
	assert.ErrorIs(t, err, models.ErrDuplicatePhone)
}

func TestDeleteCustomerRequiresBackendID(t *testing.T) {
	svc := newCustomerService(&fakeClient{})

	err := svc.Delete(context.Background(), "local-only")
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestListDegradesToEmptyOnFailure(t *testing.T) {
	svc := newCustomerService(&fakeClient{failAll: true})

	assert.Empty(t, svc.List(context.Background()))
	assert.Empty(t, svc.Couriers(context.Background()))
}
