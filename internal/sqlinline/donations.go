package sqlinline

const QInsertDonation = `--sql 9b79c57c-3615-48a2-9d85-3426d5b3f7eb
insert into donations(id, amount, created_at)
values ($1::uuid, $2::numeric, $3::timestamptz);
`

const QListDonationsPage = `--sql 7a08e4f6-cb8a-42c4-bd7f-291d6e913edc
select id::text, amount::text, created_at
from donations
order by created_at desc, id desc
offset $1::int
limit $2::int;
`

const QCountDonations = `--sql 2c51f0de-93b4-4d8e-b1a0-6f2e7c0d9a34
select count(*)
from donations;
`

const QSumDonations = `--sql e4a7b3c9-1d2f-4e58-8a6b-0c9d2e1f3a57
select coalesce(sum(amount), 0)::text
from donations;
`
