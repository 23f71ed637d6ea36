package sqlinline

const QInsertQuestion = `--sql 5d3c8e21-7a4b-4f96-b0e2-9c1a6d7f4b83
insert into questions(id, email, question, status, ip_address, country, created_at)
values ($1::uuid, $2::text, $3::text, 'new', nullif($4::text, ''), nullif($5::text, ''), $6::timestamptz);
`

const qQuestionColumns = `id::text, email, question, status, coalesce(response, ''), responded_at,
       coalesce(ip_address, ''), coalesce(country, ''), created_at`

const QSelectQuestionByID = `--sql 1f8b6a4d-3c27-4e05-a9d1-8e4b2c6f0d19
select ` + qQuestionColumns + `
from questions
where id = $1::uuid;
`

const QMarkQuestionResponded = `--sql a6e2d9f3-4b18-4c7a-8e05-d3f1b7c2a940
update questions
set status = 'responded', response = $2::text, responded_at = $3::timestamptz
where id = $1::uuid;
`

const QListQuestions = `--sql 8c4f1e7b-2a9d-4d36-b5e8-f0a3c6d1e274
select ` + qQuestionColumns + `
from questions
order by created_at desc, id desc;
`

const QListQuestionsCreatedAfter = `--sql 3e9a7c5b-6d1f-4b82-9c04-a7e2f5d8b136
select ` + qQuestionColumns + `
from questions
where created_at > $1::timestamptz
   or (created_at = $1::timestamptz and id::text > $2::text)
order by created_at asc, id asc
limit $3::int;
`

const QQuestionStats = `--sql d7b1f4a8-9e3c-4a56-8f12-b4c6e9d0a385
select count(*),
       count(*) filter (where status = 'new'),
       count(*) filter (where status = 'responded'),
       count(*) filter (where date_trunc('month', created_at at time zone 'UTC')
                              = date_trunc('month', $1::timestamptz at time zone 'UTC'))
from questions;
`
