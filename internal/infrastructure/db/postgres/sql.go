package postgres

const insertBookingSQL = `
INSERT INTO bookings (
  id, tenant_id, owner_id, service_id,
  start_time, end_time, status, notes,
  created_at, updated_at
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
`

const getBookingSQL = `
SELECT id, tenant_id, owner_id, service_id,
       start_time, end_time, status, notes,
       created_at, updated_at
FROM bookings WHERE id = $1
`

const updateBookingSQL = `
UPDATE bookings SET
  start_time=$2, end_time=$3, status=$4, notes=$5, updated_at=$6
WHERE id=$1
`

const bookingColumns = `id, tenant_id, owner_id, service_id,
       start_time, end_time, status, notes,
       created_at, updated_at`

const insertServiceSQL = `
INSERT INTO services (
  id, tenant_id, category_id, name, description,
  duration_minutes, price, is_active, created_at, updated_at
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
`

const getServiceSQL = `
SELECT id, tenant_id, category_id, name, description,
       duration_minutes, price, is_active, created_at, updated_at
FROM services WHERE id = $1
`

const updateServiceSQL = `
UPDATE services SET
  tenant_id=$2, category_id=$3, name=$4, description=$5,
  duration_minutes=$6, price=$7, is_active=$8, updated_at=$9
WHERE id=$1
`

const deleteServiceSQL = `DELETE FROM services WHERE id = $1`

const insertCategorySQL = `
INSERT INTO categories (id, tenant_id, name, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5)
`

const getCategorySQL = `
SELECT id, tenant_id, name, created_at, updated_at
FROM categories WHERE id = $1
`

const updateCategorySQL = `
UPDATE categories SET tenant_id=$2, name=$3, updated_at=$4 WHERE id=$1
`

const deleteCategorySQL = `DELETE FROM categories WHERE id = $1`

const insertTenantSQL = `
INSERT INTO tenants (
  id, business_name, email, phone, address, time_zone,
  created_at, updated_at
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
`

const getTenantSQL = `
SELECT id, business_name, email, phone, address, time_zone,
       created_at, updated_at
FROM tenants WHERE id = $1
`

const updateTenantSQL = `
UPDATE tenants SET
  business_name=$2, email=$3, phone=$4, address=$5, time_zone=$6, updated_at=$7
WHERE id=$1
`
